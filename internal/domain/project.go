package domain

// Project is a named grouping sessions belong to. Identifier is the stable
// cross-system key; DisplayName is what humans see and may be decorated on the
// remote side.
type Project struct {
	Identifier  string
	DisplayName string
}

// ProjectFromLabel builds the input-side project for a raw heartbeat label.
// The label doubles as both identifier and display name.
func ProjectFromLabel(label string) Project {
	return Project{Identifier: label, DisplayName: label}
}

// RemoteProject is a project as known by the remote system, carrying its
// remote ID alongside the tag-derived identity.
type RemoteProject struct {
	ID string
	Project
}
