package models

type Classroom struct {
	BaseModel

	Name      string `json:"name" validate:"required,max=100"`
	Code      string `json:"code" gorm:"uniqueIndex;size:6"`
	AccountID uint   `json:"account_id"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	Polls []Poll `json:"polls,omitempty" gorm:"foreignKey:ClassroomID;constraint:OnDelete:CASCADE"`
}
