// Package observation implements the engine's append-only event log and
// per-tick statistics aggregator (spec §4.16 "Observation"). The event log
// is the stable boundary between the engine and every analytic script: no
// in-process observer registration is required, just append/read/clear on a
// single growable buffer (spec §9 "Event log").
package observation

import "github.com/talgya/mini-world/internal/ids"

// Kind tags an Event's variant. The source material downcasts event records
// dynamically to read optional fields; here that becomes a closed tagged
// union whose variants carry exactly the fields log consumers need (spec §9
// "Dynamic-typed records").
type Kind uint8

const (
	EntityCreated Kind = iota
	EntityDied
	EntityMoved
	Interaction
	PartnerSelected
	Replication
	ArtifactCreated
	ArtifactDecayed
	Harvest
	InformationExchange
	InformationInheritance
	InformationAcquisition
	Disaster
	GuardrailIntervention
)

// String names an event Kind.
func (k Kind) String() string {
	switch k {
	case EntityCreated:
		return "entityCreated"
	case EntityDied:
		return "entityDied"
	case EntityMoved:
		return "entityMoved"
	case Interaction:
		return "interaction"
	case PartnerSelected:
		return "partnerSelected"
	case Replication:
		return "replication"
	case ArtifactCreated:
		return "artifactCreated"
	case ArtifactDecayed:
		return "artifactDecayed"
	case Harvest:
		return "harvest"
	case InformationExchange:
		return "informationExchange"
	case InformationInheritance:
		return "informationInheritance"
	case InformationAcquisition:
		return "informationAcquisition"
	case Disaster:
		return "disaster"
	case GuardrailIntervention:
		return "guardrailIntervention"
	default:
		return "unknown"
	}
}

// Event is one append-only log record. Fields not relevant to Kind are left
// zero; each resolver populates only the fields its variant documents.
type Event struct {
	Tick uint64
	Kind Kind

	EntityID      ids.EntityID
	OtherEntityID ids.EntityID
	NodeID        ids.NodeID
	FromNode      ids.NodeID
	ToNode        ids.NodeID
	ArtifactID    ids.ArtifactID

	Amount float64
	Reason string

	NoiseOccurred bool
	Cooperative   bool
}

// Log is the append-only, externally-cleared event buffer (spec §4.16,
// §6 "getEventLog() / clearEventLog()").
type Log struct {
	events []Event
}

// NewLog creates an empty event log.
func NewLog() *Log { return &Log{} }

// Append records e.
func (l *Log) Append(e Event) { l.events = append(l.events, e) }

// All returns every event currently buffered, oldest first. The returned
// slice aliases internal storage and must not be mutated by the caller.
func (l *Log) All() []Event { return l.events }

// Len returns the number of buffered events.
func (l *Log) Len() int { return len(l.events) }

// Clear truncates the log, used by scripts to window counts per tick (spec
// §6 "clearEventLog()").
func (l *Log) Clear() { l.events = l.events[:0] }
