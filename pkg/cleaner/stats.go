package cleaner

import "fmt"

// Stats counts what each cleaning pass removed or rewrote.
type Stats struct {
	ResourceTagsRemoved int `json:"resource_tags_removed"`
	CommentsRemoved     int `json:"comments_removed"`
	InteractiveRemoved  int `json:"interactive_removed"`
	TabContainersFlat   int `json:"tab_containers_flattened"`
	EmptyContainersGone int `json:"empty_containers_removed"`
}

// Processed returns the total number of nodes all passes touched.
func (s *Stats) Processed() int {
	return s.ResourceTagsRemoved +
		s.CommentsRemoved +
		s.InteractiveRemoved +
		s.TabContainersFlat +
		s.EmptyContainersGone
}

func (s *Stats) String() string {
	return fmt.Sprintf("resources=%d comments=%d interactive=%d tabs=%d empty=%d",
		s.ResourceTagsRemoved, s.CommentsRemoved, s.InteractiveRemoved,
		s.TabContainersFlat, s.EmptyContainersGone)
}
