package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Visitors ---

type checkInRequest struct {
	VisitorName           string `json:"visitorName"           validate:"required"`
	PhoneNumber           string `json:"phoneNumber"`
	IDNumber              string `json:"idNumber"`
	Gender                string `json:"gender"`
	VisitorType           string `json:"visitorType"           validate:"required,oneof=foot vehicle"`
	VehiclePlate          string `json:"vehiclePlate"          validate:"required_if=VisitorType vehicle"`
	PurposeOfVisit        string `json:"purposeOfVisit"`
	Residence             string `json:"residence"`
	InstitutionOccupation string `json:"institutionOccupation"`
	TagNumber             string `json:"tagNumber"`
	TagNotGiven           bool   `json:"tagNotGiven"`
}

type listVisitorsQuery struct {
	DateFrom    string `query:"dateFrom"    validate:"omitempty,datetime=2006-01-02"`
	DateTo      string `query:"dateTo"      validate:"omitempty,datetime=2006-01-02"`
	VisitorType string `query:"visitorType" validate:"omitempty,oneof=foot vehicle"`
	Status      string `query:"status"      validate:"omitempty,oneof=active overdue checked_out"`
	Search      string `query:"search"`
	SearchField string `query:"searchField" validate:"omitempty,oneof=all name phone id tag"`
}

type editVisitorRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type editHistoryResponse struct {
	Field    string    `json:"field"`
	OldValue any       `json:"oldValue"`
	NewValue any       `json:"newValue"`
	EditedBy string    `json:"editedBy"`
	EditedAt time.Time `json:"editedAt"`
}

type visitorResponse struct {
	ID                    string     `json:"id"`
	VisitorName           string     `json:"visitorName"`
	PhoneNumber           string     `json:"phoneNumber"`
	IDNumber              string     `json:"idNumber"`
	Gender                string     `json:"gender"`
	VisitorType           string     `json:"visitorType"`
	VehiclePlate          string     `json:"vehiclePlate,omitempty"`
	PurposeOfVisit        string     `json:"purposeOfVisit"`
	Residence             string     `json:"residence"`
	InstitutionOccupation string     `json:"institutionOccupation"`
	TagNumber             string     `json:"tagNumber"`
	TagNotGiven           bool       `json:"tagNotGiven"`
	TagDisplay            string     `json:"tagDisplay"`
	TimeIn                time.Time  `json:"timeIn"`
	TimeOut               *time.Time `json:"timeOut,omitempty"`
	IsCheckedOut          bool       `json:"isCheckedOut"`
	CheckedInBy           string     `json:"checkedInBy"`
	CheckedOutBy          string     `json:"checkedOutBy,omitempty"`
	LastEditedBy          string     `json:"lastEditedBy,omitempty"`
	LastEditedAt          *time.Time `json:"lastEditedAt,omitempty"`
	Status                string     `json:"status"`
	StatusLabel           string     `json:"statusLabel"`
	Duration              string     `json:"duration"`
	HoursOnSite           int        `json:"hoursOnSite"`
	Severity              string     `json:"severity,omitempty"`
}

type editVisitorResponse struct {
	Visitor visitorResponse      `json:"visitor"`
	Entry   *editHistoryResponse `json:"entry,omitempty"`
	Changed bool                 `json:"changed"`
}

type dayGroupResponse struct {
	Date     string            `json:"date"`
	Total    int               `json:"total"`
	Active   int               `json:"active"`
	Overdue  int               `json:"overdue"`
	Visitors []visitorResponse `json:"visitors"`
}

type groupResponse struct {
	Key      string            `json:"key"`
	Total    int               `json:"total"`
	Active   int               `json:"active"`
	Overdue  int               `json:"overdue"`
	Visitors []visitorResponse `json:"visitors"`
}

type overdueAlertResponse struct {
	Visitor       visitorResponse `json:"visitor"`
	HoursOverdue  int             `json:"hoursOverdue"`
	Severity      string          `json:"severity"`
	SeverityLabel string          `json:"severityLabel"`
	DurationText  string          `json:"durationText"`
}

type overdueResponse struct {
	Alerts   []overdueAlertResponse `json:"alerts"`
	Total    int                    `json:"total"`
	Critical int                    `json:"critical"`
	High     int                    `json:"high"`
	Medium   int                    `json:"medium"`
}

// --- Users ---

type createUserRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"        validate:"omitempty,oneof=admin user"`
	Platform    string `json:"platform"    validate:"omitempty,oneof=web mobile"`
}

type updateUserRequest struct {
	Role        *string `json:"role"        validate:"omitempty,oneof=admin user"`
	DisplayName *string `json:"displayName"`
}

type userResponse struct {
	UID         string     `json:"uid"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName,omitempty"`
	Role        string     `json:"role"`
	Platform    string     `json:"platform"`
	IsOnline    bool       `json:"isOnline"`
	LastSeen    *time.Time `json:"lastSeen,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	DeviceInfo  string     `json:"deviceInfo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StatusLabel string     `json:"statusLabel,omitempty"`
	StatusColor string     `json:"statusColor,omitempty"`
}

type userListResponse struct {
	Users  []userResponse `json:"users"`
	Online int            `json:"online"`
	Total  int            `json:"total"`
}

// --- Presence ---

// heartbeatRequest.LastChanged accepts epoch millis or a timestamp string.
type heartbeatRequest struct {
	State       string `json:"state"       validate:"required,oneof=online offline"`
	LastChanged any    `json:"lastChanged"`
	Platform    string `json:"platform"    validate:"omitempty,oneof=web mobile"`
	DeviceInfo  string `json:"deviceInfo"`
	DisplayName string `json:"displayName"`
}

type onlineResponse struct {
	Online int `json:"online"`
}
