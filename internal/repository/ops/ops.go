package ops

// Firestore query operators
const (
	Equal        = "=="
	NotEqual     = "!="
	Greater      = ">"
	GreaterEqual = ">="
	Less         = "<"
	LessEqual    = "<="
)
