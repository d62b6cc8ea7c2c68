package service

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/altamira-viajes/backoffice/db/models"
)

type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan models.Payment
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan models.Payment)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.Payment) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.Payment)
	}
	subId = fmt.Sprintf("%016x", rand.Uint64())
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic string, msg models.Payment) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return
	}

	for _, ch := range ps.subs[topic] {
		ch <- msg
	}
}
