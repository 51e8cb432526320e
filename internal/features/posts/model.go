package posts

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of a post. RESOLVED is terminal.
type Status string

const (
	StatusLost     Status = "LOST"
	StatusFound    Status = "FOUND"
	StatusResolved Status = "RESOLVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusResolved:
		return true
	}
	return false
}

// ParseStatus accepts any letter case.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

type ItemType string

const (
	TypePhone    ItemType = "PHONE"
	TypeLaptop   ItemType = "LAPTOP"
	TypePurse    ItemType = "PURSE"
	TypeWallet   ItemType = "WALLET"
	TypeIDCard   ItemType = "ID_CARD"
	TypeDocument ItemType = "DOCUMENT"
	TypePet      ItemType = "PET"
	TypeBag      ItemType = "BAG"
	TypeID       ItemType = "ID"
	TypeOther    ItemType = "OTHER"
)

func (t ItemType) Valid() bool {
	switch t {
	case TypePhone, TypeLaptop, TypePurse, TypeWallet, TypeIDCard,
		TypeDocument, TypePet, TypeBag, TypeID, TypeOther:
		return true
	}
	return false
}

// Identifier names a device identifier field usable for exact matching.
type Identifier string

const (
	IdentifierIMEI   Identifier = "imei"
	IdentifierSerial Identifier = "serialNumber"
)

// Post is a lost or found item report.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Location     string             `bson:"location" json:"location"`
	Date         string             `bson:"date" json:"date"`
	Time         string             `bson:"time,omitempty" json:"time,omitempty"`
	Images       []string           `bson:"images" json:"images"`
	Type         ItemType           `bson:"type" json:"type"`
	Status       Status             `bson:"status" json:"status"`
	Color        string             `bson:"color,omitempty" json:"color,omitempty"`
	IMEI         string             `bson:"imei,omitempty" json:"imei,omitempty"`
	SerialNumber string             `bson:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	IDNumber     string             `bson:"idNumber,omitempty" json:"idNumber,omitempty"`
	ContactName  string             `bson:"contactName,omitempty" json:"contactName,omitempty"`
	ContactPhone string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	UserName     string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserInitial  string             `bson:"userInitial" json:"userInitial"`
	Hidden       bool               `bson:"hidden" json:"hidden"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PostRequest for POST /posts and PUT /posts/:id
type PostRequest struct {
	UserID       string   `json:"userId" binding:"max=64"`
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"max=5000"`
	Location     string   `json:"location" binding:"max=200"`
	Date         string   `json:"date" binding:"omitempty,isodate"`
	Time         string   `json:"time" binding:"omitempty,clocktime"`
	Images       []string `json:"images" binding:"max=10,dive,max=2048"`
	Type         string   `json:"type" binding:"required,itemtype"`
	Status       string   `json:"status" binding:"omitempty,poststatus"`
	Color        string   `json:"color" binding:"max=50"`
	IMEI         string   `json:"imei" binding:"max=32"`
	SerialNumber string   `json:"serialNumber" binding:"max=64"`
	IDNumber     string   `json:"idNumber" binding:"max=64"`
	ContactName  string   `json:"contactName" binding:"max=100"`
	ContactPhone string   `json:"contactPhone" binding:"omitempty,phone"`
	UserName     string   `json:"userName" binding:"max=100"`
	UserInitial  string   `json:"userInitial" binding:"max=4"`
}

// ListQuery for GET /posts
type ListQuery struct {
	Status string `form:"status" binding:"omitempty,poststatus"`
}

func (r PostRequest) toPost() *Post {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return &Post{
		UserID:       strings.TrimSpace(r.UserID),
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		Location:     r.Location,
		Date:         r.Date,
		Time:         r.Time,
		Images:       images,
		Type:         ItemType(upper(r.Type)),
		Status:       Status(upper(r.Status)),
		Color:        r.Color,
		IMEI:         strings.TrimSpace(r.IMEI),
		SerialNumber: strings.TrimSpace(r.SerialNumber),
		IDNumber:     strings.TrimSpace(r.IDNumber),
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		UserName:     r.UserName,
		UserInitial:  r.UserInitial,
	}
}
