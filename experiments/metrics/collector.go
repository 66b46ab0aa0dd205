package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Workers     int
	Repetitions int
	Fields      int // Candidate moves scored
	Rollouts    int
	Duration    time.Duration
}

type MoveMetric struct {
	Step   int
	Player string // Mark of the mover
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingAgent int // AgentConfig.ID playing first
	Winner        string
	WinnerAgent   int // AgentConfig.ID
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

type AgentConfig struct {
	ID          int
	Workers     int
	Repetitions int
	Mode        string
	Weight      int // Relative frequency when picked as an opponent
}

type Collector interface {
	Start(workers, repetitions int)
	AddField()
	AddRollouts(n int)
	Complete() SearchMetric
}

type collector struct {
	workers     int
	repetitions int
	startTime   time.Time
	fields      atomic.Int64
	rollouts    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, repetitions int) {
	m.startTime = time.Now()
	m.workers = workers
	m.repetitions = repetitions
	m.fields.Store(0)
	m.rollouts.Store(0)
}

func (m *collector) AddField() {
	m.fields.Add(1)
}

func (m *collector) AddRollouts(n int) {
	m.rollouts.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:     m.workers,
		Repetitions: m.repetitions,
		Fields:      int(m.fields.Load()),
		Rollouts:    int(m.rollouts.Load()),
		Duration:    time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, repetitions int) {}
func (m *dummyCollector) AddField()                      {}
func (m *dummyCollector) AddRollouts(n int)              {}
func (m *dummyCollector) Complete() SearchMetric         { return SearchMetric{} }
