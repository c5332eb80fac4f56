package lists

import (
	"strings"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

// DroppedPrefix is an input entry that is not a network address.
type DroppedPrefix struct {
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ClassifiedPrefixSet partitions one raw list by address family.
// Every input entry is in exactly one of V4, V6 or Dropped.
type ClassifiedPrefixSet struct {
	V4      []string        `json:"ipv4"`
	V6      []string        `json:"ipv6"`
	Dropped []DroppedPrefix `json:"dropped,omitempty"`
}

// Total returns the number of classified and dropped entries.
func (s *ClassifiedPrefixSet) Total() int {
	return len(s.V4) + len(s.V6) + len(s.Dropped)
}

// Classify splits raw into IPv4 and IPv6 prefixes, keeping source order.
// Unparseable entries are logged and dropped; Classify never fails.
func Classify(raw []string) *ClassifiedPrefixSet {
	set := &ClassifiedPrefixSet{
		V4: make([]string, 0, len(raw)),
		V6: make([]string, 0),
	}

	for _, value := range raw {
		prefix, err := utils.ParseNetworkPrefix(value)
		if err != nil {
			log.Warn("Unknown network detected", "network", value, "reason", err.Error())
			set.Dropped = append(set.Dropped, DroppedPrefix{Value: value, Reason: err.Error()})
			continue
		}

		if utils.IsIPv4Prefix(prefix) {
			set.V4 = append(set.V4, strings.TrimSpace(value))
		} else {
			set.V6 = append(set.V6, strings.TrimSpace(value))
		}
	}

	log.Info("Split IPv4 and IPv6 networks",
		"ipv4", set.V4,
		"ipv6", set.V6,
		"dropped", len(set.Dropped))

	return set
}
