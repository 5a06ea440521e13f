package protocol

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

func reflector() *jsonschema.Reflector {
	r := new(jsonschema.Reflector)
	r.Anonymous = true
	r.Namer = func(t reflect.Type) string {
		return "protocol." + t.Name()
	}

	return r
}

// InboundSchema describes the messages a driver accepts.
func InboundSchema() *jsonschema.Schema {
	return reflector().Reflect(&Inbound{})
}

// OutboundSchema describes the messages a driver emits.
func OutboundSchema() *jsonschema.Schema {
	return reflector().Reflect(&Outbound{})
}
