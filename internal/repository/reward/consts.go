package reward

const (
	// collection names, rewards live under establishments/{id}/rewards
	establishmentNode string = "establishments"
	rewardNode        string = "rewards"

	IdFieldPath        string = "id"
	NameFieldPath      string = "name"
	WeightFieldPath    string = "weight"
	ActiveFieldPath    string = "active"
	CreatedAtFieldPath string = "createdAt"
)
