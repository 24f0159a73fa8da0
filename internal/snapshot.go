package internal

// Snapshot is the whole persisted state: every collection plus the
// active-user pointer. It is serialized as one JSON blob; field names match
// the blob layout the original client persisted, so existing data loads.
type Snapshot struct {
	Users         []User         `json:"users"`
	Sessions      []SleepSession `json:"sessions"`
	Follows       []Follow       `json:"follows"`
	Likes         []Like         `json:"likes"`
	Comments      []Comment      `json:"comments"`
	CommentLikes  []CommentLike  `json:"commentLikes"`
	CurrentUserID string         `json:"currentUserId"`
}

// Clone returns a copy sharing no memory with the session, including the
// optional numeric fields and the stage list.
func (s SleepSession) Clone() SleepSession {
	out := s
	if s.Score != nil {
		v := *s.Score
		out.Score = &v
	}
	if s.RestingHeartRate != nil {
		v := *s.RestingHeartRate
		out.RestingHeartRate = &v
	}
	if s.SleepStages != nil {
		out.SleepStages = make(SleepStages, len(s.SleepStages))
		copy(out.SleepStages, s.SleepStages)
	}
	return out
}

func CloneSessions(in []SleepSession) []SleepSession {
	out := make([]SleepSession, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// Clone deep-copies the snapshot. Mutating the copy never touches the
// original; the seed template relies on this.
func (sn *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Users:         append([]User(nil), sn.Users...),
		Sessions:      CloneSessions(sn.Sessions),
		Follows:       append([]Follow(nil), sn.Follows...),
		Likes:         append([]Like(nil), sn.Likes...),
		Comments:      append([]Comment(nil), sn.Comments...),
		CommentLikes:  append([]CommentLike(nil), sn.CommentLikes...),
		CurrentUserID: sn.CurrentUserID,
	}
	return out
}
