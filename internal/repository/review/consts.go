package review

import "time"

const (
	// collection name
	reviewNode string = "reviews"

	// Fields' name and path
	IdFieldPath              string = "id"
	EstablishmentIdFieldPath string = "establishmentId"
	RatingFieldPath          string = "rating"
	VisibilityFieldPath      string = "visibility"
	ProcessedFieldPath       string = "processed"
	DraftFieldPath           string = "draft"
	CreatedAtFieldPath       string = "createdAt"
	UpdatedAtFieldPath       string = "updatedAt"

	// It must not exceed the write timeout of the database.firestore.notifyOnChanges
	channelWriteTimeout time.Duration = time.Second * 3
)
