package domain

import (
	"fmt"
	"time"
)

// EntityKind identifies the type of a tracked source entity
type EntityKind string

const (
	EntityApp     EntityKind = "app"
	EntityChannel EntityKind = "channel"
)

// EntityRef addresses a tracked entity by kind and id
type EntityRef struct {
	Kind EntityKind
	ID   string
}

// String returns "kind:id"
func (e EntityRef) String() string {
	return fmt.Sprintf("%s:%s", e.Kind, e.ID)
}

// AppRef builds a reference to a tracked steam app
func AppRef(appID int64) EntityRef {
	return EntityRef{Kind: EntityApp, ID: fmt.Sprintf("%d", appID)}
}

// ChannelRef builds a reference to a tracked youtube channel
func ChannelRef(channelID string) EntityRef {
	return EntityRef{Kind: EntityChannel, ID: channelID}
}

// TrackedApp is a steam application whose reviews are ingested
type TrackedApp struct {
	AppID             int64
	Name              string
	Active            bool
	LastKnownPosition int64 // unix seconds of the newest persisted review
	CreatedAt         time.Time
}

// Channel is a youtube channel whose videos are ingested
type Channel struct {
	ChannelID         string
	Handle            string // @name, used by the transcript provider
	Name              string
	InfluencerID      string
	Active            bool
	LastKnownPosition int64 // unix seconds of the newest persisted video
	CreatedAt         time.Time
}

// Ref returns the tracker reference for the channel
func (c Channel) Ref() EntityRef { return ChannelRef(c.ChannelID) }

// Ref returns the tracker reference for the app
func (a TrackedApp) Ref() EntityRef { return AppRef(a.AppID) }

// Game groups a steam app and the influencers covering it
type Game struct {
	ID           string
	Name         string
	SteamAppID   int64 // zero if the game has no steam page
	SlackChannel string
	Active       bool
	CreatedAt    time.Time
}

// Influencer owns one or more youtube channels
type Influencer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
