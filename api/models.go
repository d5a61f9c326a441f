package api

import "time"

// SessionState is the lifecycle state of a session as reported by the
// backend.
type SessionState string

const (
	SessionInit       SessionState = "INIT"
	SessionRunning    SessionState = "RUNNING"
	SessionPaused     SessionState = "PAUSED"
	SessionSuspended  SessionState = "SUSPENDED"
	SessionTerminated SessionState = "TERMINATED"
	SessionIdle       SessionState = "IDLE"
	SessionClosed     SessionState = "CLOSED"
)

type Session struct {
	ID                 string         `json:"id"`
	Space              string         `json:"space"`
	CreatedBy          string         `json:"created_by"`
	State              SessionState   `json:"state"`
	ContainerID        *string        `json:"container_id"`
	PersistentVolumeID *string        `json:"persistent_volume_id"`
	ParentSessionID    *string        `json:"parent_session_id"`
	CreatedAt          time.Time      `json:"created_at"`
	StartedAt          *time.Time     `json:"started_at"`
	LastActivityAt     *time.Time     `json:"last_activity_at"`
	TerminatedAt       *time.Time     `json:"terminated_at"`
	TerminationReason  *string        `json:"termination_reason"`
	Metadata           map[string]any `json:"metadata"`
}

type CreateSessionRequest struct {
	Space    *string        `json:"space,omitzero"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

type UpdateSessionRequest struct {
	Space    *string        `json:"space,omitzero"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

type Message struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

type MessageCount struct {
	Count uint64 `json:"count"`
}

type Space struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Settings    map[string]any `json:"settings,omitzero"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CreateSpaceRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description,omitzero"`
	Settings    map[string]any `json:"settings,omitzero"`
}

type UpdateSpaceRequest struct {
	Description *string        `json:"description,omitzero"`
	Settings    map[string]any `json:"settings,omitzero"`
}

type AgentStatus string

const (
	AgentStopped AgentStatus = "stopped"
	AgentRunning AgentStatus = "running"
	AgentError   AgentStatus = "error"
)

type Agent struct {
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	Purpose      *string     `json:"purpose,omitzero"`
	SourceRepo   *string     `json:"source_repo,omitzero"`
	SourceBranch *string     `json:"source_branch,omitzero"`
	Status       AgentStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type CreateAgentRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitzero"`
	Purpose      *string `json:"purpose,omitzero"`
	SourceRepo   *string `json:"source_repo,omitzero"`
	SourceBranch *string `json:"source_branch,omitzero"`
}

type UpdateAgentRequest struct {
	Description *string `json:"description,omitzero"`
	Purpose     *string `json:"purpose,omitzero"`
}

type Secret struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description,omitzero"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceAccount struct {
	ID          string     `json:"id"`
	User        string     `json:"user"`
	Space       *string    `json:"space"`
	Description *string    `json:"description"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type CreateServiceAccountRequest struct {
	User        string  `json:"user"`
	Pass        string  `json:"pass"`
	Space       *string `json:"space,omitzero"`
	Description *string `json:"description,omitzero"`
}

type UpdateServiceAccountRequest struct {
	Space       *string `json:"space,omitzero"`
	Description *string `json:"description,omitzero"`
	Active      *bool   `json:"active,omitzero"`
}

type RoleRule struct {
	Resources []string `json:"resources"`
	Verbs     []string `json:"verbs"`
	Scope     string   `json:"scope"`
}

type Role struct {
	ID          string     `json:"id"`
	Description *string    `json:"description"`
	Rules       []RoleRule `json:"rules"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateRoleRequest struct {
	ID          string     `json:"id"`
	Description *string    `json:"description,omitzero"`
	Rules       []RoleRule `json:"rules"`
}

type RoleBinding struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	RoleRef   string    `json:"role_ref"`
	Space     *string   `json:"space"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateRoleBindingRequest struct {
	Subject string  `json:"subject"`
	RoleRef string  `json:"role_ref"`
	Space   *string `json:"space,omitzero"`
}

type BuildStatus string

const (
	BuildPending   BuildStatus = "pending"
	BuildBuilding  BuildStatus = "building"
	BuildCompleted BuildStatus = "completed"
	BuildFailed    BuildStatus = "failed"
)

type Build struct {
	ID          string      `json:"id"`
	Space       string      `json:"space"`
	Status      BuildStatus `json:"status"`
	Image       *string     `json:"image"`
	Logs        *string     `json:"logs"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

type CreateBuildRequest struct {
	Dockerfile string  `json:"dockerfile"`
	Context    *string `json:"context,omitzero"`
}

type VersionInfo struct {
	Version string `json:"version"`
	API     string `json:"api"`
}
