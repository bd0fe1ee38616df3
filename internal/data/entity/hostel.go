package entity

type HostelGender string

const (
	HostelGenderMale   HostelGender = "MALE"
	HostelGenderFemale HostelGender = "FEMALE"
	HostelGenderMixed  HostelGender = "MIXED"
)

type Hostel struct {
	Base
	Name     string       `db:"name" json:"name"`
	Address  string       `db:"address" json:"address"`
	City     string       `db:"city" json:"city"`
	Gender   HostelGender `db:"gender" json:"gender"`
	IsActive bool         `db:"is_active" json:"isActive"`
}
