package domain

// Shop is a seller provisioned by an admin
type Shop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerEmail  string `json:"ownerEmail"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl,omitempty"`
}
