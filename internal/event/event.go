// Package event defines the game log: combat reports, level transitions,
// and system notices that clients render in their message feed.
package event

import "fmt"

// Message types on the wire.
const (
	TypeCombat     = "combat"
	TypeLevelEvent = "level_event"
	TypeSystem     = "system"
)

// Event is one game-log entry. Text is pre-formatted server-side; the
// structured fields let clients restyle combat lines without parsing it.
type Event struct {
	MessageType string `json:"message_type"`
	Text        string `json:"text"`

	Attacker          string `json:"attacker,omitempty"`
	Target            string `json:"target,omitempty"`
	Damage            int    `json:"damage,omitempty"`
	TargetHealthAfter int    `json:"target_health_after,omitempty"`
	TargetDied        bool   `json:"target_died,omitempty"`
	IsCrit            bool   `json:"is_crit,omitempty"`
}

// Combat reports a normal hit or kill.
func Combat(attacker, target string, damage, healthAfter int, died bool) Event {
	text := fmt.Sprintf("%s dealt %d damage to %s", attacker, damage, target)
	if died {
		text = fmt.Sprintf("%s killed %s!", attacker, target)
	}
	return Event{
		MessageType:       TypeCombat,
		Text:              text,
		Attacker:          attacker,
		Target:            target,
		Damage:            damage,
		TargetHealthAfter: healthAfter,
		TargetDied:        died,
	}
}

// CombatCrit reports a critical hit or kill.
func CombatCrit(attacker, target string, damage, healthAfter int, died bool) Event {
	text := fmt.Sprintf("%s CRITICALLY dealt %d damage to %s", attacker, damage, target)
	if died {
		text = fmt.Sprintf("%s CRITICALLY killed %s!", attacker, target)
	}
	e := Combat(attacker, target, damage, healthAfter, died)
	e.Text = text
	e.IsCrit = true
	return e
}

// Healing reports an item restoring a character's health. Healing lines ride
// the combat channel so clients show them in the same feed.
func Healing(item, target string, amount, healthAfter int) Event {
	return Event{
		MessageType:       TypeCombat,
		Text:              fmt.Sprintf("%s healed %s for %d HP", item, target, amount),
		Attacker:          item,
		Target:            target,
		Damage:            amount,
		TargetHealthAfter: healthAfter,
	}
}

// LevelEvent reports a level-scope happening: stairs reached, chest opened,
// level restarted.
func LevelEvent(text string) Event {
	return Event{MessageType: TypeLevelEvent, Text: text}
}

// System reports a server notice such as a player joining or leaving.
func System(text string) Event {
	return Event{MessageType: TypeSystem, Text: text}
}
