package common

import "time"

// EntityType is the category of a catalogued subject.
type EntityType string

const (
	EntityTypePerson       EntityType = "person"
	EntityTypeGroup        EntityType = "group"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeWebsite      EntityType = "website"
	EntityTypeOther        EntityType = "other"
)

// EntityTypes lists every accepted entity type in display order.
var EntityTypes = []EntityType{
	EntityTypePerson,
	EntityTypeGroup,
	EntityTypeOrganization,
	EntityTypeWebsite,
	EntityTypeOther,
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	for _, et := range EntityTypes {
		if et == t {
			return true
		}
	}
	return false
}

// SocialPlatform names the network a social account belongs to.
type SocialPlatform string

// SocialPlatforms lists every accepted platform.
var SocialPlatforms = []SocialPlatform{
	"telegram",
	"discord",
	"twitter",
	"instagram",
	"facebook",
	"linkedin",
	"github",
	"reddit",
	"tiktok",
	"youtube",
	"whatsapp",
	"signal",
	"snapchat",
	"twitch",
	"steam",
	"forums",
	"other",
}

// Valid reports whether p is one of the known platforms.
func (p SocialPlatform) Valid() bool {
	for _, sp := range SocialPlatforms {
		if sp == p {
			return true
		}
	}
	return false
}

// Entity is a catalogued subject: a person, group, organization, website or
// anything else worth tracking. Every entity is owned by exactly one user.
//
// The website fields (IPs, Domains, HostingInfo, WebArchiveURL) only carry
// values for entities of type website.
type Entity struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Type          EntityType `json:"type"`
	AvatarURL     *string    `json:"avatar_url"`
	Notes         *string    `json:"notes"`
	IPs           *string    `json:"ips"`
	Domains       *string    `json:"domains"`
	HostingInfo   *string    `json:"hosting_info"`
	WebArchiveURL *string    `json:"web_archive_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Relationship is a labelled edge between two entities. It is stored with a
// direction (EntityAID -> EntityBID) but several relationships may exist
// between the same pair in either direction.
type Relationship struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	EntityAID        string    `json:"entity_a_id"`
	EntityBID        string    `json:"entity_b_id"`
	RelationshipType string    `json:"relationship_type"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SocialAccount is a profile on some platform attributed to an entity.
type SocialAccount struct {
	ID             string         `json:"id"`
	EntityID       string         `json:"entity_id"`
	Platform       SocialPlatform `json:"platform"`
	Username       *string        `json:"username"`
	UserIDPlatform *string        `json:"user_id_platform"`
	DisplayName    *string        `json:"display_name"`
	ProfileURL     *string        `json:"profile_url"`
	AvatarURL      *string        `json:"avatar_url"`
	Notes          *string        `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Tag is a user defined label that can be attached to entities.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityImage is a picture attached to an entity, either uploaded to object
// storage (ObjectKey set) or referenced by an external URL.
type EntityImage struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entity_id"`
	ImageURL  string    `json:"image_url"`
	ObjectKey *string   `json:"-"`
	Title     *string   `json:"title"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExtractStatus tracks text extraction of an uploaded document.
type ExtractStatus string

const (
	ExtractStatusPending     ExtractStatus = "pending"
	ExtractStatusDone        ExtractStatus = "done"
	ExtractStatusUnsupported ExtractStatus = "unsupported"
	ExtractStatusFailed      ExtractStatus = "failed"
)

// EntityDocument is a file attached to an entity. The object itself lives in
// object storage under ObjectKey.
type EntityDocument struct {
	ID            string        `json:"id"`
	EntityID      string        `json:"entity_id"`
	Title         string        `json:"title"`
	ObjectKey     string        `json:"-"`
	FileName      string        `json:"file_name"`
	FileType      string        `json:"file_type"`
	FileSize      int64         `json:"file_size"`
	Notes         *string       `json:"notes"`
	ExtractStatus ExtractStatus `json:"extract_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
