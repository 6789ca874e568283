package model

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Gender      Gender `json:"gender"`
	SMSPhone    string `json:"sms_phone"`
	SMSProvider string `json:"sms_provider"`
}

// Pronoun returns the possessive pronoun used when talking about the user's team.
func (u *User) Pronoun() string {
	switch u.Gender {
	case GenderMale:
		return "his"
	case GenderFemale:
		return "her"
	default:
		return "their"
	}
}
