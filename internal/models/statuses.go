package models

type UserStatus string
type UserRole string
type RequestStatus string
type MatchStatus string
type NotificationKind string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleCreator UserRole = "creator"
	UserRoleAdmin   UserRole = "admin"

	RequestStatusOpen      RequestStatus = "open"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCancelled RequestStatus = "cancelled"

	MatchStatusProposed MatchStatus = "proposed"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusDeclined MatchStatus = "declined"

	NotificationKindApplication NotificationKind = "application"
	NotificationKindMatch       NotificationKind = "match"
	NotificationKindAccept      NotificationKind = "accept"
	NotificationKindDecline     NotificationKind = "decline"
)

// requestTransitions is the lifecycle lattice. Status never regresses:
// open → matched → accepted, with cancelled reachable from open/matched.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusOpen:      {RequestStatusMatched, RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusMatched:   {RequestStatusOpen, RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusAccepted:  {},
	RequestStatusCancelled: {},
}

// CanTransition reports whether a request may move from one status to
// another. matched → open is the single allowed "revert": it happens when
// every proposed match has been declined and no match was accepted.
func CanTransition(from, to RequestStatus) bool {
	for _, allowed := range requestTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// ValidNotificationKind reports whether the kind is known.
func ValidNotificationKind(kind NotificationKind) bool {
	switch kind {
	case NotificationKindApplication, NotificationKindMatch,
		NotificationKindAccept, NotificationKindDecline:
		return true
	}
	return false
}
