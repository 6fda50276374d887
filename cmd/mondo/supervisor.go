package main

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
)

var SutureEventLabels = map[suture.EventType]string{
	suture.EventTypeStopTimeout:      "timeout",
	suture.EventTypeServicePanic:     "panic",
	suture.EventTypeServiceTerminate: "terminate",
	suture.EventTypeBackoff:          "backoff",
	suture.EventTypeResume:           "resume",
}

func MakeRootSupervisor() *suture.Supervisor {
	return suture.New(filepath.Base(os.Args[0]), suture.Spec{EventHook: EventHook})
}

func EventHook(event suture.Event) {
	log.
		WithField("message", event.String()).
		WithFields(log.Fields(event.Map())).
		Warnf("suture.%s", SutureEventLabels[event.Type()])
}
