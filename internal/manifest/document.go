// Package manifest loads descriptor documents written by an external analyzer
// (YAML or JSON) into a descriptor graph.
package manifest

// Document is the root of a descriptor document.
type Document struct {
	Name      string       `yaml:"name" json:"name"`
	Namespace string       `yaml:"namespace" json:"namespace"`
	Classes   []ClassSpec  `yaml:"classes" json:"classes"`
	Functions []MethodSpec `yaml:"functions" json:"functions"`
}

// ClassSpec describes a class, interface or trait.
type ClassSpec struct {
	Name        string       `yaml:"name" json:"name"`
	Kind        string       `yaml:"kind" json:"kind"`
	Visibility  string       `yaml:"visibility" json:"visibility"`
	Summary     string       `yaml:"summary" json:"summary"`
	Description string       `yaml:"description" json:"description"`
	Parent      string       `yaml:"parent" json:"parent"`
	Uses        []string     `yaml:"uses" json:"uses"`
	Implements  []string     `yaml:"implements" json:"implements"`
	Abstract    bool         `yaml:"abstract" json:"abstract"`
	Final       bool         `yaml:"final" json:"final"`
	Line        int          `yaml:"line" json:"line"`
	Methods     []MethodSpec `yaml:"methods" json:"methods"`
}

// MethodSpec describes a method or a function.
type MethodSpec struct {
	Name        string         `yaml:"name" json:"name"`
	Summary     string         `yaml:"summary" json:"summary"`
	Description string         `yaml:"description" json:"description"`
	Visibility  string         `yaml:"visibility" json:"visibility"`
	Static      bool           `yaml:"static" json:"static"`
	Abstract    bool           `yaml:"abstract" json:"abstract"`
	Final       bool           `yaml:"final" json:"final"`
	Returns     string         `yaml:"returns" json:"returns"`
	Inherits    string         `yaml:"inherits" json:"inherits"`
	Line        int            `yaml:"line" json:"line"`
	Arguments   []ArgumentSpec `yaml:"arguments" json:"arguments"`
}

// ArgumentSpec describes an argument. An empty Type leaves the type to be
// inherited from the overridden method.
type ArgumentSpec struct {
	Name        string  `yaml:"name" json:"name"`
	Type        string  `yaml:"type" json:"type"`
	Default     *string `yaml:"default" json:"default"`
	ByReference bool    `yaml:"byReference" json:"byReference"`
	Variadic    bool    `yaml:"variadic" json:"variadic"`
	Summary     string  `yaml:"summary" json:"summary"`
	Line        int     `yaml:"line" json:"line"`
}
