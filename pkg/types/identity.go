package types

// CallerIdentity represents AWS caller identity information
type CallerIdentity struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserID  string `json:"user_id"`
}
