package establishment

const (
	// collection name
	establishmentNode string = "establishments"

	IdFieldPath        string = "id"
	NameFieldPath      string = "name"
	ShortCodeFieldPath string = "shortCode"
	ReviewUrlFieldPath string = "reviewUrl"
)
