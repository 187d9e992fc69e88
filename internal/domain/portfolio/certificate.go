package portfolio

type Certificate struct {
	Base
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	IssueDate     Date   `json:"issue_date"`
	CredentialID  string `json:"credential_id"`
	CredentialURL string `json:"credential_url"`
	ImageURL      string `json:"image_url"`
	OrderIndex    int    `json:"order_index"`
}

func (c *Certificate) OrderKey() int { return c.OrderIndex }

func (c *Certificate) Normalize() {
	trim(&c.Title, &c.Issuer, &c.CredentialID, &c.CredentialURL, &c.ImageURL)
}

func (c *Certificate) Validate() error {
	if err := checkRequired(
		required("title", c.Title),
		required("issuer", c.Issuer),
		required("issue_date", c.IssueDate.String()),
	); err != nil {
		return err
	}
	if err := checkURL("credential_url", c.CredentialURL); err != nil {
		return err
	}
	return checkURL("image_url", c.ImageURL)
}
