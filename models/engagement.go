package models

import "strings"

// EngagementHistory is the typed engagement record kept on a user profile.
// It replaces free-form history blobs; stores normalize it on every read so
// downstream scoring never sees empty or duplicate entries.
type EngagementHistory struct {
	LikedPostIDs   []string `dynamodbav:"likedPostIds,omitempty" json:"likedPostIds,omitempty"`
	MatchedUserIDs []string `dynamodbav:"matchedUserIds,omitempty" json:"matchedUserIds,omitempty"`
	PostedMoods    []string `dynamodbav:"postedMoods,omitempty" json:"postedMoods,omitempty"`
}

// Normalize drops empty entries and duplicates, preserving first-seen order.
func (h EngagementHistory) Normalize() EngagementHistory {
	return EngagementHistory{
		LikedPostIDs:   dedupe(h.LikedPostIDs),
		MatchedUserIDs: dedupe(h.MatchedUserIDs),
		PostedMoods:    dedupe(h.PostedMoods),
	}
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
