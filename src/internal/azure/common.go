package azure

import (
	"encoding/json"
)

// ResourceID names one IP group.
type ResourceID struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

func (id ResourceID) String() string {
	return "/subscriptions/" + id.SubscriptionID +
		"/resourceGroups/" + id.ResourceGroup +
		"/providers/Microsoft.Network/ipGroups/" + id.Name
}

// IPGroup is the ARM representation of an IP group.
//
// Tags are kept as raw JSON so they are written back byte for byte.
type IPGroup struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name,omitempty"`
	Type       string            `json:"type,omitempty"`
	Etag       string            `json:"etag,omitempty"`
	Location   string            `json:"location"`
	Tags       json.RawMessage   `json:"tags,omitempty"`
	Properties IPGroupProperties `json:"properties"`
}

type IPGroupProperties struct {
	ProvisioningState string   `json:"provisioningState,omitempty"`
	IPAddresses       []string `json:"ipAddresses"`
}

// TagMap decodes the tags for logging. Non-string values are dropped.
func (g *IPGroup) TagMap() map[string]string {
	tags := map[string]string{}
	if g == nil || len(g.Tags) == 0 {
		return tags
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(g.Tags, &raw); err != nil {
		return tags
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			tags[k] = s
		}
	}
	return tags
}

// updateRequest is the PUT body: metadata as read plus the new address list.
type updateRequest struct {
	Tags       json.RawMessage  `json:"tags,omitempty"`
	Location   string           `json:"location"`
	Properties updateProperties `json:"properties"`
}

type updateProperties struct {
	IPAddresses []string `json:"ipAddresses"`
}
