package entity

// DoctorInfo is the directory record used to enrich appointments whose
// embedded doctor details are absent.
type DoctorInfo struct {
	DoctorID   int    `gorm:"primaryKey;column:doctor_id" json:"doctorId"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
}

func (DoctorInfo) TableName() string {
	return "doctors"
}

// RoomInfo is the directory record for an examination room.
type RoomInfo struct {
	RoomID   int    `gorm:"primaryKey;column:room_id" json:"roomId"`
	Note     string `json:"note"`
	Floor    int    `json:"floor"`
	Building string `json:"building"`
}

func (RoomInfo) TableName() string {
	return "rooms"
}
