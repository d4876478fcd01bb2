package farmer

// Farmer is a seller profile shown in the farmer directory.
type Farmer struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Rating    float64  `json:"rating"`
	Products  []string `json:"products"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Joined    string   `json:"joined"`
	About     string   `json:"about"`
}
