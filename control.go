package faultsim

import "github.com/theapemachine/errnie"

// Wire values of the control messages.
const (
	MessageFaultyEnabled  = "FaultyEnabled"
	MessageFaultyDisabled = "FaultyDisabled"
)

// ControlMessage is the closed set of messages the ControlChannel knows.
type ControlMessage int

const (
	ControlUnrecognized ControlMessage = iota
	ControlEnable
	ControlDisable
)

func (cm ControlMessage) String() string {
	switch cm {
	case ControlEnable:
		return "enable"
	case ControlDisable:
		return "disable"
	default:
		return "unrecognized"
	}
}

// ParseControlMessage maps a payload to its ControlMessage. Matching is exact.
func ParseControlMessage(msg string) ControlMessage {
	switch msg {
	case MessageFaultyEnabled:
		return ControlEnable
	case MessageFaultyDisabled:
		return ControlDisable
	default:
		return ControlUnrecognized
	}
}

/*
ControlChannel toggles a FaultController from outside the gate path. It sits
in front of the host's message handler: the two control messages are
consumed, everything else is passed to next untouched, including its error.
*/
type ControlChannel struct {
	controller *FaultController
	next       MessageHandler
}

// NewControlChannel returns a channel forwarding unknown messages to next, which may be nil.
func NewControlChannel(controller *FaultController, next MessageHandler) *ControlChannel {
	return &ControlChannel{controller: controller, next: next}
}

func (cc *ControlChannel) Message(msg string) error {
	switch ParseControlMessage(msg) {
	case ControlEnable:
		cc.controller.SetEnabled(true)
		return nil
	case ControlDisable:
		cc.controller.SetEnabled(false)
		return nil
	}

	if cc.next == nil {
		errnie.Info("ControlChannel - no host handler for message %q", msg)
		return nil
	}

	return cc.next.Message(msg)
}
