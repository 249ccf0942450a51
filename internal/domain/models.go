package domain

// Photo represents one photo listed on the admin photos page
type Photo struct {
	ID   int
	Path string // thumbnail URL, empty if the backend could not build one
}

// DeletePayload is the JSON body of the bulk-delete request
type DeletePayload struct {
	PhotoIDs []int `json:"photo_ids"`
}

// Page is a single load of the admin photos page
type Page struct {
	Photos []Photo
}

// DeleteState is the state of the delete action
type DeleteState int

const (
	DeleteIdle DeleteState = iota
	DeleteInFlight
)

func (s DeleteState) String() string {
	switch s {
	case DeleteInFlight:
		return "in-flight"
	default:
		return "idle"
	}
}
