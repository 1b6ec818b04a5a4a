package event_test

import (
	"testing"

	"github.com/angeleecka/linkapp/internal/event"
	"github.com/stretchr/testify/assert"
)

func TestBus_DispatchByType(t *testing.T) {
	bus := event.NewBus()

	var loaded, updated int
	bus.On(event.TypeDataLoaded, func(event.Event) { loaded++ })
	bus.On(event.TypeDataUpdated, func(event.Event) { updated++ })

	bus.Emit(event.DataLoaded{})
	bus.Emit(event.DataUpdated{})
	bus.Emit(event.DataUpdated{})

	assert.Equal(t, 1, loaded)
	assert.Equal(t, 2, updated)
}

func TestBus_MultipleHandlersInOrder(t *testing.T) {
	bus := event.NewBus()

	var order []int
	bus.On(event.TypeSessionsChanged, func(event.Event) { order = append(order, 1) })
	bus.On(event.TypeSessionsChanged, func(event.Event) { order = append(order, 2) })

	bus.Emit(event.SessionsChanged{})
	assert.Equal(t, []int{1, 2}, order)
}

func TestBus_UserMessageHelpers(t *testing.T) {
	bus := event.NewBus()

	var got []event.UserMessage
	bus.On(event.TypeUserMessage, func(e event.Event) {
		got = append(got, e.(event.UserMessage))
	})

	bus.Success("saved")
	bus.Error("boom")
	bus.Warning("careful")
	bus.Info("fyi")

	assert.Equal(t, []event.UserMessage{
		{Level: event.LevelSuccess, Text: "saved"},
		{Level: event.LevelError, Text: "boom"},
		{Level: event.LevelWarning, Text: "careful"},
		{Level: event.LevelInfo, Text: "fyi"},
	}, got)
}

func TestBus_EmitWithoutSubscribers(t *testing.T) {
	bus := event.NewBus()
	assert.NotPanics(t, func() {
		bus.Emit(event.ActiveNameChanged{Name: "main"})
	})
}
