package store

import (
	"context"
	"sort"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

// --- Follows ---

func (s *Store) ListFollows(ctx context.Context) ([]internal.Follow, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]internal.Follow(nil), s.data.Follows...), nil
}

func (s *Store) CreateFollow(ctx context.Context, followerID, followingID string) (*internal.Follow, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.data.Follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			out := f
			return &out, nil
		}
	}
	follow := internal.Follow{
		ID:          s.newID("follow"),
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	s.data.Follows = append(s.data.Follows, follow)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &follow, nil
}

// DeleteFollow removes the edge if present. Removing an absent edge still
// succeeds and skips the persist.
func (s *Store) DeleteFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.data.Follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			s.data.Follows = append(s.data.Follows[:i], s.data.Follows[i+1:]...)
			if err := s.persistLocked(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return true, nil
}

// --- Likes ---

func (s *Store) ListLikesBySession(ctx context.Context, sessionID string) ([]internal.Like, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Like, 0)
	for _, l := range s.data.Likes {
		if l.SessionID == sessionID {
			out = append(out, l)
		}
	}
	return out, nil
}

// AddLike makes (userID, sessionID) a member of the like set. Idempotent;
// returns whether a like was created.
func (s *Store) AddLike(ctx context.Context, userID, sessionID string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLikeLocked(userID, sessionID) >= 0 {
		return false, nil
	}
	s.data.Likes = append(s.data.Likes, internal.Like{
		ID:        s.newID("like"),
		UserID:    userID,
		SessionID: sessionID,
	})
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveLike removes the pair from the like set. Idempotent; returns
// whether a like was removed.
func (s *Store) RemoveLike(ctx context.Context, userID, sessionID string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findLikeLocked(userID, sessionID)
	if i < 0 {
		return false, nil
	}
	s.data.Likes = append(s.data.Likes[:i], s.data.Likes[i+1:]...)
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleLike flips membership and reports the state after the flip.
func (s *Store) ToggleLike(ctx context.Context, userID, sessionID string) (bool, error) {
	removed, err := s.RemoveLike(ctx, userID, sessionID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := s.AddLike(ctx, userID, sessionID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) findLikeLocked(userID, sessionID string) int {
	for i, l := range s.data.Likes {
		if l.UserID == userID && l.SessionID == sessionID {
			return i
		}
	}
	return -1
}

// --- Comments ---

// ListCommentsBySession returns a session's comments, newest first.
func (s *Store) ListCommentsBySession(ctx context.Context, sessionID string) ([]internal.Comment, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]internal.Comment, 0)
	for _, c := range s.data.Comments {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, userID, sessionID, text string) (*internal.Comment, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	comment := internal.Comment{
		ID:          s.newID("comment"),
		UserID:      userID,
		SessionID:   sessionID,
		Text:        text,
		CreatedDate: s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Comments = append(s.data.Comments, comment)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the comment and cascades to its likes.
func (s *Store) DeleteComment(ctx context.Context, id string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.data.Comments[:0]
	for _, c := range s.data.Comments {
		if c.ID != id {
			comments = append(comments, c)
		}
	}
	s.data.Comments = comments

	commentLikes := s.data.CommentLikes[:0]
	for _, cl := range s.data.CommentLikes {
		if cl.CommentID != id {
			commentLikes = append(commentLikes, cl)
		}
	}
	s.data.CommentLikes = commentLikes

	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// --- Comment likes ---

// ListCommentLikesForSession returns the likes of every comment under the
// session.
func (s *Store) ListCommentLikesForSession(ctx context.Context, sessionID string) ([]internal.CommentLike, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	commentIDs := make(map[string]bool)
	for _, c := range s.data.Comments {
		if c.SessionID == sessionID {
			commentIDs[c.ID] = true
		}
	}
	out := make([]internal.CommentLike, 0)
	for _, cl := range s.data.CommentLikes {
		if commentIDs[cl.CommentID] {
			out = append(out, cl)
		}
	}
	return out, nil
}

func (s *Store) AddCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCommentLikeLocked(userID, commentID) >= 0 {
		return false, nil
	}
	s.data.CommentLikes = append(s.data.CommentLikes, internal.CommentLike{
		ID:        s.newID("comment-like"),
		UserID:    userID,
		CommentID: commentID,
	})
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) RemoveCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	if err := s.simulate(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findCommentLikeLocked(userID, commentID)
	if i < 0 {
		return false, nil
	}
	s.data.CommentLikes = append(s.data.CommentLikes[:i], s.data.CommentLikes[i+1:]...)
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	removed, err := s.RemoveCommentLike(ctx, userID, commentID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := s.AddCommentLike(ctx, userID, commentID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) findCommentLikeLocked(userID, commentID string) int {
	for i, cl := range s.data.CommentLikes {
		if cl.UserID == userID && cl.CommentID == commentID {
			return i
		}
	}
	return -1
}
