package internal

import (
	"sort"
)

// Extractor runs the full pipeline for each host: locate containers, read
// the stored value, unwrap its JSON layers, and assemble conversations.
// Every run is a full stateless re-read; nothing is cached between runs.
type Extractor struct {
	rt      *Runtime
	locator *Locator
	asm     *Assembler
}

// NewExtractor creates an Extractor for one run.
func NewExtractor(rt *Runtime, settings *Settings) *Extractor {
	return &Extractor{
		rt:      rt,
		locator: NewLocator(rt, settings),
		asm:     NewAssembler(rt),
	}
}

// ExtractAll extracts conversations from every supported host, ordered by
// last interaction, newest first.
func (e *Extractor) ExtractAll() []Conversation {
	var all []Conversation
	for _, spec := range Hosts {
		all = append(all, e.ExtractHost(spec)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].LastInteractedAt.After(all[j].LastInteractedAt)
	})
	return all
}

// ExtractHost extracts conversations from all of one host's containers. A
// failing container degrades to no data from that container.
func (e *Extractor) ExtractHost(spec HostSpec) []Conversation {
	containers := e.locator.Containers(spec)
	if len(containers) == 0 {
		e.rt.Log.Debug("no containers found", "host", spec.ID)
		return nil
	}

	var conversations []Conversation
	for _, container := range containers {
		extracted := e.extractContainer(spec, container)
		e.rt.Log.Debug("container extracted",
			"host", spec.ID, "container", container.ID, "conversations", len(extracted))
		conversations = append(conversations, extracted...)
	}
	e.rt.Log.Info("host extraction complete",
		"host", spec.ID, "containers", len(containers), "conversations", len(conversations))
	return conversations
}

func (e *Extractor) extractContainer(spec HostSpec, container Container) []Conversation {
	var store KVStore
	var key string
	switch spec.Kind {
	case StoreTable:
		store = NewSQLiteStore(container.Path, e.rt)
		key = mementoChatKey
	default:
		store = NewXMLStateStore(container.Path, e.rt)
		key = chatStateKey
	}

	value, ok, err := store.Get(key)
	if err != nil {
		e.rt.Log.Warn("container unavailable",
			"host", spec.ID, "path", container.Path, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	state, ok := UnwrapChatState([]byte(value))
	if !ok {
		e.rt.Log.Warn("container value undecodable",
			"host", spec.ID, "path", container.Path, "key", key)
		return nil
	}

	return e.asm.AssembleConversations(state, container.ID, string(spec.ID))
}
