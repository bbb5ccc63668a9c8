package responsepolicy

const (
	// collection name, documents are keyed by establishment id
	responsePolicyNode string = "responsePolicies"
)
