package discord

import (
	"fmt"
	"strings"

	"github.com/Adirelle/mondo/pkg/permissions"
)

type (
	// PermissionList grants a permission to whoever matches any of its items.
	PermissionList []PermissionItem

	// PermissionItem matches actors on every ID it sets.
	PermissionItem struct {
		UserID    *Snowflake `json:"userId,omitempty" validate:"required_without_all=RoleID ChannelID"`
		RoleID    *Snowflake `json:"roleId,omitempty" validate:"required_without_all=UserID ChannelID"`
		ChannelID *Snowflake `json:"channelId,omitempty" validate:"required_without_all=UserID RoleID"`
	}

	Actor interface {
		permissions.Actor
		IsUser(Snowflake) bool
		HasRole(Snowflake) bool
		InChannel(Snowflake) bool
	}
)

var (
	// Interface checks
	_ permissions.Grant = (PermissionList)(nil)
	_ permissions.Grant = PermissionItem{}
)

func (l PermissionList) Allow(actor permissions.Actor) bool {
	for _, item := range l {
		if item.Allow(actor) {
			return true
		}
	}
	return false
}

func (l PermissionList) DescribeGrant() string {
	if len(l) == 0 {
		return permissions.Nobody.DescribeGrant()
	}
	parts := make([]string, len(l))
	for i, item := range l {
		parts[i] = item.DescribeGrant()
	}
	return strings.Join(parts, ", ")
}

func (i PermissionItem) Allow(permActor permissions.Actor) bool {
	actor, isActor := permActor.(Actor)
	return isActor &&
		(i.UserID != nil || i.RoleID != nil || i.ChannelID != nil) &&
		(i.UserID == nil || actor.IsUser(*i.UserID)) &&
		(i.RoleID == nil || actor.HasRole(*i.RoleID)) &&
		(i.ChannelID == nil || actor.InChannel(*i.ChannelID))
}

func (i PermissionItem) DescribeGrant() string {
	parts := make([]string, 0, 3)
	if i.UserID != nil {
		parts = append(parts, fmt.Sprintf("<@%s>", *i.UserID))
	}
	if i.RoleID != nil {
		parts = append(parts, fmt.Sprintf("<@&%s>", *i.RoleID))
	}
	if i.ChannelID != nil {
		parts = append(parts, fmt.Sprintf("<#%s>", *i.ChannelID))
	}
	if len(parts) == 0 {
		return permissions.Nobody.DescribeGrant()
	}
	return strings.Join(parts, "&")
}
