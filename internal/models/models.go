package models

// User is the profile the auth endpoint returns. The client treats every
// field as read-only; only the remote service may change the balance.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
}

// Session pairs an opaque token with the user it authenticates. A session
// with an empty token or a nil user is not a session at all.
type Session struct {
	Token string `json:"sessionToken"`
	User  *User  `json:"user"`
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Skin rarities as the catalog source spells them.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Skin is one purchasable catalog item. Entries come from a static catalog
// and are never mutated by this process.
type Skin struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Game    string  `json:"game"`
	Price   float64 `json:"price"`
	Rarity  string  `json:"rarity"`
	Image   string  `json:"image"`
	Popular bool    `json:"popular"`
}
