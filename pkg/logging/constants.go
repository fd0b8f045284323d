package logging

// Shortcuts for event types.
// Any event that happens multiple times should have a single character representation
const (
	ServiceStarted = "start"
	ServiceStopped = "stop"
	Acquired       = "A"
	Queued         = "Q"
	HandedOff      = "H"
	Freed          = "F"
	Abandoned      = "X"
	Stats          = "S"
	TaskDone       = "D"
	Violation      = "V"
)

// eventTypeDict maps short event names to human readable form
var eventTypeDict = map[string]string{
	Acquired:  "lock acquired immediately",
	Queued:    "lock busy, waiter queued",
	HandedOff: "lock handed off to the next waiter",
	Freed:     "lock released with no waiters",
	Abandoned: "abandoned waiter skipped",
	Stats:     "lock statistics",
	TaskDone:  "task finished its critical section",
	Violation: "mutual exclusion violated",
}

// Field names
const (
	Time     = "T"
	Level    = "L"
	Event    = "E"
	Service  = "S"
	Token    = "K"
	Waiting  = "W"
	Task     = "I"
	Size     = "N"
	WaitTime = "M"
)

// fieldNameDict maps short field names to human readable form
var fieldNameDict = map[string]string{
	Time:     "time",
	Level:    "level",
	Event:    "event",
	Service:  "service",
	Token:    "token",
	Waiting:  "waiting",
	Task:     "task",
	Size:     "size",
	WaitTime: "wait[us]",
}

// Service types
const (
	MutexService int = iota
	StatsService
	StressService
	OrderedService
)

// serviceTypeDict maps integer service types to human readable names
var serviceTypeDict = map[int]string{
	MutexService:   "MUTEX",
	StatsService:   "STATS",
	StressService:  "STRESS",
	OrderedService: "ORDER",
}

// Genesis was better with Phil Collins
const Genesis = "genesis"
