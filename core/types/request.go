package types

// Request is a fulfillment request wrapping an asset
type Request struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	Status        string      `json:"status"`
	Created       string      `json:"created"`
	EffectiveDate string      `json:"effective_date"`
	Assignee      Assignee    `json:"assignee"`
	Marketplace   Marketplace `json:"marketplace"`
	Asset         Asset       `json:"asset"`
}

// Assignee is the operator a request is assigned to
type Assignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
