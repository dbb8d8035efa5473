package models

type Role string

const (
	RoleProfessor = Role("professor")
	RoleStudent   = Role("student")
)

func (v Role) Valid() bool {
	return v == RoleProfessor || v == RoleStudent
}

type Account struct {
	BaseModel

	Name     string `json:"name" gorm:"uniqueIndex" validate:"required,alphanum,min=2,max=80"`
	Password string `json:"-"`
	Role     Role   `json:"role" gorm:"default:student"`

	Classrooms []Classroom `json:"classrooms,omitempty" gorm:"foreignKey:AccountID"`
	Votes      []Vote      `json:"votes,omitempty" gorm:"foreignKey:AccountID"`
}
