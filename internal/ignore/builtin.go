package ignore

// DefaultBuiltinPatterns are always excluded in Filtered mode and cannot be
// re-included by workspace rules.
var DefaultBuiltinPatterns = []string{
	"package-lock.json",
	"yarn.lock",
	"*.log",
}
