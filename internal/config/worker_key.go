package config

type WorkerKeyStruct struct {
	ProctorEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ProctorEventsQueue: "persist_proctor_events_queue",
}
