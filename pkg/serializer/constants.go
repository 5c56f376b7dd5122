package serializer

// URI constants for input/output destinations
const (
	// StdoutURI is the special URI indicating output should be written to stdout.
	StdoutURI = "-"

	// HTTPScheme and HTTPSScheme are the URL schemes accepted by FromFile
	// for remote inputs.
	HTTPScheme  = "http://"
	HTTPSScheme = "https://"
)
