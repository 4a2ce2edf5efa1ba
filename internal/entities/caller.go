package entities

// Caller пользователь запроса, его кладет в контекст auth middleware.
type Caller struct {
	ID      string
	IsAdmin bool
}

// SystemCaller для фоновых консьюмеров, действующих от имени платформы.
var SystemCaller = Caller{
	ID:      "system",
	IsAdmin: true,
}

type Scope int

const (
	ScopeOwner Scope = iota
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeOwner:
		return "owner"
	case ScopeAll:
		return "all"
	default:
		return "unknown"
	}
}
