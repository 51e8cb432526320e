package interactions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the state of a claim.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

var statuses = []Status{StatusPending, StatusAccepted, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo is the full claim state table. The owner's confirmation
// is accepted from any state, so it can be replayed and overrides an earlier
// rejection. Only a PENDING claim can be rejected.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	case StatusAccepted, StatusRejected:
		return next == StatusAccepted
	}
	return false
}

// sourcesOf lists the states from which next is reachable.
func sourcesOf(next Status) []Status {
	var from []Status
	for _, s := range statuses {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}

// FoundInteraction is a finder's claim to have found the item behind a post.
// At most one exists per (postId, finderEmail).
type FoundInteraction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID      string             `bson:"postId" json:"postId"`
	FinderEmail string             `bson:"finderEmail" json:"finderEmail"`
	FinderName  string             `bson:"finderName,omitempty" json:"finderName,omitempty"`
	FinderPhone string             `bson:"finderPhone,omitempty" json:"finderPhone,omitempty"`
	OwnerEmail  string             `bson:"ownerEmail,omitempty" json:"ownerEmail,omitempty"`
	Status      Status             `bson:"status" json:"status"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// RecordFoundRequest for POST /interactions/found
type RecordFoundRequest struct {
	PostID      string `json:"postId" binding:"max=64"`
	FinderEmail string `json:"finderEmail" binding:"max=254"`
	FinderName  string `json:"finderName" binding:"max=100"`
	FinderPhone string `json:"finderPhone" binding:"max=32"`
}

// ConfirmResult is the accepted claim plus whether its post was resolved.
// PostResolved is false when the post is gone or the write failed; confirming
// again retries the resolution.
type ConfirmResult struct {
	FoundInteraction
	PostResolved bool `json:"postResolved"`
}
