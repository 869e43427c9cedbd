package auth

import "time"

// Kind discriminates the two principal collections. Both authenticate through
// the same pipeline but live in separate uniqueness scopes.
type Kind string

const (
	KindUser  Kind = "user"
	KindOwner Kind = "proprietario"
)

// Roles accepted for KindUser principals. KindOwner principals carry the
// fixed "proprietario" tag instead of a role.
const (
	RoleAdmin     = "admin"
	RoleEvaluator = "evaluator"
	RoleOwner     = "owner"
)

// Principal is an authenticatable record: a platform user or a property
// owner (proprietário). PasswordHash is the only secret-bearing field and
// never leaves this package through a summary projection.
type Principal struct {
	ID           string
	Kind         Kind
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Profile      *OwnerProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerProfile holds the self-declared property and water attributes a
// proprietário submits at registration. Data at rest; nothing behavioral
// hangs off it beyond required-field presence.
type OwnerProfile struct {
	FullName              string     `json:"nomeCompleto"`
	CPF                   string     `json:"cpf"`
	CARNumber             string     `json:"numeroCAR"`
	PropertyDetails       string     `json:"dadosPropriedade,omitempty"`
	HasSpring             bool       `json:"temNascente"`
	SpringCount           int        `json:"quantidadeNascentes,omitempty"`
	WaterAvailability     string     `json:"disponibilidadeAgua"`
	SpringUses            []string   `json:"usosNascente,omitempty"`
	SurroundingVegetation string     `json:"vegetacaoAoRedor"`
	HasProtection         bool       `json:"temProtecao"`
	FlowTestDone          bool       `json:"testeVazaoRealizado"`
	FlowRate              float64    `json:"valorVazao,omitempty"`
	FlowTestDate          *time.Time `json:"dataVazao,omitempty"`
	QualityAnalysisDone   bool       `json:"analiseQualidadeRealizada"`
	AnalysisParameters    string     `json:"parametrosAnalise,omitempty"`
	AnalysisDate          *time.Time `json:"dataAnalise,omitempty"`
	WaterColor            string     `json:"corAgua"`
}

// UserSummary is the non-secret projection returned by user register/login.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// OwnerSummary mirrors the proprietário response shape of the public API.
type OwnerSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"nomeCompleto"`
	Tipo     string `json:"tipo"`
}

func userSummary(p Principal) UserSummary {
	return UserSummary{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}

func ownerSummary(p Principal) OwnerSummary {
	s := OwnerSummary{ID: p.ID, Email: p.Email, Tipo: string(KindOwner)}
	if p.Profile != nil {
		s.FullName = p.Profile.FullName
	}
	return s
}
