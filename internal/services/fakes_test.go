package services

import (
	"context"
	"sort"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories. It
// implements repositories.Store; Transaction simply runs the callback
// against the same state, which is enough for behavior tests.
type memStore struct {
	users         map[uint]*models.User
	comments      map[uint]*models.Comment
	messages      map[uint]*models.Message
	notifications []models.Notification
	follows       []models.Follow
	blocks        []models.Block
	postLikes     []models.PostLike
	commentLikes  []models.CommentLike
	tasks         map[string]*models.Task
	roles         map[uint]*models.Role
	nextID        uint
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint]*models.User{},
		comments: map[uint]*models.Comment{},
		messages: map[uint]*models.Message{},
		tasks:    map[string]*models.Task{},
		roles:    map[uint]*models.Role{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) Users() repositories.UserRepository                 { return (*memUsers)(s) }
func (s *memStore) Comments() repositories.CommentRepository           { return (*memComments)(s) }
func (s *memStore) Messages() repositories.MessageRepository           { return (*memMessages)(s) }
func (s *memStore) Notifications() repositories.NotificationRepository { return (*memNotifications)(s) }
func (s *memStore) Follows() repositories.FollowRepository             { return (*memFollows)(s) }
func (s *memStore) Blocks() repositories.BlockRepository               { return (*memBlocks)(s) }
func (s *memStore) Likes() repositories.LikeRepository                 { return (*memLikes)(s) }
func (s *memStore) Tasks() repositories.TaskRepository                 { return (*memTasks)(s) }
func (s *memStore) Roles() repositories.RoleRepository                 { return (*memRoles)(s) }

func (s *memStore) Transaction(_ context.Context, fn func(repositories.Store) error) error {
	return fn(s)
}

// test seeding helpers

func (s *memStore) addUser(username string) *models.User {
	u := &models.User{ID: s.id(), Username: username, Email: username + "@example.com"}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addComment(postID string, author *models.User, parentID *uint, at time.Time) *models.Comment {
	c := &models.Comment{ID: s.id(), PostID: postID, UserID: author.ID, ParentID: parentID, Body: "c", CreatedAt: at}
	s.comments[c.ID] = c
	return c
}

func (s *memStore) addRole(slug string, permissions uint, isDefault bool) *models.Role {
	role := &models.Role{ID: s.id(), Slug: slug, Name: slug, Default: isDefault, Permissions: permissions}
	s.roles[role.ID] = role
	return role
}

func (s *memStore) addMessage(from, to *models.User, at time.Time) *models.Message {
	m := &models.Message{ID: s.id(), SenderID: from.ID, RecipientID: to.ID, Body: "m", CreatedAt: at}
	s.messages[m.ID] = m
	return m
}

func (s *memStore) lastNotification(userID uint, name string) *models.Notification {
	var found *models.Notification
	for i := range s.notifications {
		n := s.notifications[i]
		if n.UserID == userID && n.Name == name {
			found = &s.notifications[i]
		}
	}
	return found
}

func (s *memStore) notificationCount(userID uint, name string) int {
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && n.Name == name {
			count++
		}
	}
	return count
}

type memUsers memStore

func (r *memUsers) CreateUser(user *models.User) error {
	user.ID = (*memStore)(r).id()
	r.users[user.ID] = user
	return nil
}

func (r *memUsers) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsers) getUserBy(match func(*models.User) bool) (*models.User, error) {
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsers) GetUserByUsername(username string) (*models.User, error) {
	return r.getUserBy(func(u *models.User) bool { return u.Username == username })
}

func (r *memUsers) GetUserByEmail(email string) (*models.User, error) {
	return r.getUserBy(func(u *models.User) bool { return u.Email == email })
}

func (r *memUsers) GetUserByFirebaseUID(uid string) (*models.User, error) {
	return r.getUserBy(func(u *models.User) bool { return u.FirebaseUID == uid })
}

func (r *memUsers) GetUsers(offset, limit int) ([]models.User, int64, error) {
	ids, _ := r.GetUserIDsExcept(0)
	var users []models.User
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	total := int64(len(users))
	if offset > len(users) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], total, nil
}

func (r *memUsers) GetUserIDsExcept(id uint) ([]uint, error) {
	var ids []uint
	for uid := range r.users {
		if uid != id {
			ids = append(ids, uid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *memUsers) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUsers) UpdateLastSeen(id uint, t time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastSeen = t
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *memUsers) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *memUsers) SearchUsers(string) ([]models.User, error) { return nil, nil }

type memComments memStore

func (r *memComments) CreateComment(comment *models.Comment) error {
	comment.ID = (*memStore)(r).id()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *memComments) GetCommentByID(id uint) (*models.Comment, error) {
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memComments) GetChildren(parentID uint) ([]models.Comment, error) {
	var children []models.Comment
	for _, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, *c)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

func (r *memComments) GetRootsByPostID(postID string, offset, limit int) ([]models.Comment, int64, error) {
	var roots []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID && c.ParentID == nil {
			roots = append(roots, *c)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].CreatedAt.After(roots[j].CreatedAt) })
	total := int64(len(roots))
	if offset > len(roots) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(roots) {
		end = len(roots)
	}
	return roots[offset:end], total, nil
}

func (r *memComments) GetCommentsByPostIDs(postIDs []string) ([]models.Comment, error) {
	wanted := map[string]bool{}
	for _, id := range postIDs {
		wanted[id] = true
	}
	var out []models.Comment
	for _, c := range r.comments {
		if wanted[c.PostID] {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memComments) GetCommentsByUserID(userID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memComments) UpdateComment(comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *memComments) DeleteComments(ids []uint) error {
	for _, id := range ids {
		delete(r.comments, id)
	}
	return nil
}

func (r *memComments) DeleteCommentsByPostID(postID string) error {
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

type memMessages memStore

func (r *memMessages) CreateMessage(message *models.Message) error {
	message.ID = (*memStore)(r).id()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *memMessages) GetMessageByID(id uint) (*models.Message, error) {
	if m, ok := r.messages[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func sortAscending(messages []models.Message) {
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
}

func (r *memMessages) GetBetween(userA, userB uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, *m)
		}
	}
	sortAscending(out)
	return out, nil
}

func (r *memMessages) GetReceived(userID uint, offset, limit int) ([]models.Message, int64, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.RecipientID == userID {
			out = append(out, *m)
		}
	}
	sortAscending(out)
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	total := int64(len(out))
	if offset > len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *memMessages) GetInvolving(userID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, *m)
		}
	}
	sortAscending(out)
	return out, nil
}

func (r *memMessages) CountReceivedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.RecipientID == userID && m.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *memMessages) UpdateMessage(message *models.Message) error {
	if _, ok := r.messages[message.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *memMessages) DeleteMessage(id uint) error {
	delete(r.messages, id)
	return nil
}

type memNotifications memStore

func (r *memNotifications) Replace(notification *models.Notification) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if !(n.UserID == notification.UserID && n.Name == notification.Name) {
			kept = append(kept, n)
		}
	}
	notification.ID = (*memStore)(r).id()
	r.notifications = append(kept, *notification)
	return nil
}

func (r *memNotifications) GetNotificationByID(id uint) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			copied := n
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memNotifications) ListSince(userID uint, since float64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && n.Timestamp > since {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

type memFollows memStore

func (r *memFollows) CreateFollow(follow *models.Follow) error {
	follow.ID = (*memStore)(r).id()
	r.follows = append(r.follows, *follow)
	return nil
}

func (r *memFollows) DeleteFollow(followerID, followedID uint) error {
	for i, f := range r.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			r.follows = append(r.follows[:i], r.follows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memFollows) IsFollowing(followerID, followedID uint) (bool, error) {
	for _, f := range r.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFollows) GetFollowers(userID uint) ([]models.User, error) {
	ids, _ := r.GetFollowerIDs(userID)
	var users []models.User
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *memFollows) GetFolloweds(userID uint) ([]models.User, error) {
	ids, _ := r.GetFollowedIDs(userID)
	var users []models.User
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *memFollows) GetFollowedIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, f := range r.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowedID)
		}
	}
	return ids, nil
}

func (r *memFollows) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, f := range r.follows {
		if f.FollowedID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	return ids, nil
}

func (r *memFollows) CountFollowersSince(userID uint, since time.Time) (int64, error) {
	var count int64
	for _, f := range r.follows {
		if f.FollowedID == userID && f.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

type memBlocks memStore

func (r *memBlocks) CreateBlock(block *models.Block) error {
	block.ID = (*memStore)(r).id()
	r.blocks = append(r.blocks, *block)
	return nil
}

func (r *memBlocks) DeleteBlock(blockerID, blockedID uint) error {
	for i, b := range r.blocks {
		if b.BlockerID == blockerID && b.BlockedID == blockedID {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memBlocks) IsBlocking(blockerID, blockedID uint) (bool, error) {
	for _, b := range r.blocks {
		if b.BlockerID == blockerID && b.BlockedID == blockedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBlocks) GetBlockedUsers(userID uint) ([]models.User, error) {
	var users []models.User
	for _, b := range r.blocks {
		if b.BlockerID == userID {
			users = append(users, *r.users[b.BlockedID])
		}
	}
	return users, nil
}

type memLikes memStore

func (r *memLikes) CreatePostLike(like *models.PostLike) error {
	like.ID = (*memStore)(r).id()
	r.postLikes = append(r.postLikes, *like)
	return nil
}

func (r *memLikes) DeletePostLike(postID string, userID uint) error {
	for i, l := range r.postLikes {
		if l.PostID == postID && l.UserID == userID {
			r.postLikes = append(r.postLikes[:i], r.postLikes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memLikes) HasPostLike(postID string, userID uint) (bool, error) {
	for _, l := range r.postLikes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLikes) CountPostLikes(postID string) (int64, error) {
	var count int64
	for _, l := range r.postLikes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *memLikes) postLikesSince(postIDs []string, excludeUserID uint, since time.Time) []models.PostLike {
	wanted := map[string]bool{}
	for _, id := range postIDs {
		wanted[id] = true
	}
	var out []models.PostLike
	for _, l := range r.postLikes {
		if wanted[l.PostID] && l.UserID != excludeUserID && l.CreatedAt.After(since) {
			out = append(out, l)
		}
	}
	return out
}

func (r *memLikes) CountPostLikesSince(postIDs []string, excludeUserID uint, since time.Time) (int64, error) {
	return int64(len(r.postLikesSince(postIDs, excludeUserID, since))), nil
}

func (r *memLikes) GetPostLikesSince(postIDs []string, excludeUserID uint, since time.Time) ([]models.PostLike, error) {
	likes := r.postLikesSince(postIDs, excludeUserID, since)
	sort.Slice(likes, func(i, j int) bool { return likes[i].CreatedAt.After(likes[j].CreatedAt) })
	return likes, nil
}

func (r *memLikes) DeleteLikesByPostID(postID string) error {
	kept := r.postLikes[:0]
	for _, l := range r.postLikes {
		if l.PostID != postID {
			kept = append(kept, l)
		}
	}
	r.postLikes = kept
	return nil
}

func (r *memLikes) CreateCommentLike(like *models.CommentLike) error {
	like.ID = (*memStore)(r).id()
	r.commentLikes = append(r.commentLikes, *like)
	return nil
}

func (r *memLikes) DeleteCommentLike(commentID, userID uint) error {
	for i, l := range r.commentLikes {
		if l.CommentID == commentID && l.UserID == userID {
			r.commentLikes = append(r.commentLikes[:i], r.commentLikes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memLikes) HasCommentLike(commentID, userID uint) (bool, error) {
	for _, l := range r.commentLikes {
		if l.CommentID == commentID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLikes) DeleteLikesByCommentIDs(commentIDs []uint) error {
	wanted := map[uint]bool{}
	for _, id := range commentIDs {
		wanted[id] = true
	}
	kept := r.commentLikes[:0]
	for _, l := range r.commentLikes {
		if !wanted[l.CommentID] {
			kept = append(kept, l)
		}
	}
	r.commentLikes = kept
	return nil
}

type memTasks memStore

func (r *memTasks) CreateTask(task *models.Task) error {
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *memTasks) GetTaskByID(id string) (*models.Task, error) {
	if t, ok := r.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTasks) GetTasksByUserID(userID uint) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTasks) MarkComplete(id string) error {
	if t, ok := r.tasks[id]; ok {
		t.Complete = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

type memRoles memStore

func (r *memRoles) CreateRole(role *models.Role) error {
	role.ID = (*memStore)(r).id()
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *memRoles) GetRoleByID(id uint) (*models.Role, error) {
	if role, ok := r.roles[id]; ok {
		copied := *role
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoles) GetRoleBySlug(slug string) (*models.Role, error) {
	for _, role := range r.roles {
		if role.Slug == slug {
			copied := *role
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoles) GetRoles(offset, limit int) ([]models.Role, int64, error) {
	var out []models.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset > len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *memRoles) GetDefaultRole() (*models.Role, error) {
	for _, role := range r.roles {
		if role.Default {
			copied := *role
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoles) UpdateRole(role *models.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *memRoles) DeleteRole(id uint) error {
	if _, ok := r.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *memRoles) EnsureDefaultRoles() error {
	if _, err := r.GetDefaultRole(); err == nil {
		return nil
	}
	(*memStore)(r).addRole("user", models.PermFollow|models.PermComment|models.PermWrite, true)
	(*memStore)(r).addRole("moderator", models.PermFollow|models.PermComment|models.PermWrite|models.PermModerate, false)
	(*memStore)(r).addRole("administrator", models.PermFollow|models.PermComment|models.PermWrite|models.PermModerate|models.PermAdmin, false)
	return nil
}

// memPosts is an in-memory stand-in for the MongoDB post repository.
type memPosts struct {
	posts map[string]*models.Post
}

func newMemPosts() *memPosts {
	return &memPosts{posts: map[string]*models.Post{}}
}

func (r *memPosts) addPost(author *models.User, at time.Time) *models.Post {
	p := &models.Post{ID: primitive.NewObjectID(), AuthorID: author.ID, Title: "t", Body: "b", CreatedAt: at}
	r.posts[p.ID.Hex()] = p
	return p
}

func (r *memPosts) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	copied := *post
	r.posts[post.ID.Hex()] = &copied
	return nil
}

func (r *memPosts) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPostNotFound
}

func (r *memPosts) all() []models.Post {
	var out []models.Post
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memPosts) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, int64, error) {
	all := r.all()
	total := int64(len(all))
	if skip > total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (r *memPosts) GetPostsByAuthorID(_ context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.all() {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	if skip > int64(len(out)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[skip:end], nil
}

func (r *memPosts) GetPostIDsByAuthorID(_ context.Context, authorID uint) ([]string, error) {
	var ids []string
	for id, p := range r.posts {
		if p.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memPosts) GetPostsByAuthorIDs(_ context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, int64, error) {
	wanted := map[uint]bool{}
	for _, id := range authorIDs {
		wanted[id] = true
	}
	var out []models.Post
	for _, p := range r.all() {
		if wanted[p.AuthorID] {
			out = append(out, p)
		}
	}
	total := int64(len(out))
	if skip > total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return out[skip:end], total, nil
}

func (r *memPosts) CountByAuthorIDsSince(_ context.Context, authorIDs []uint, since time.Time) (int64, error) {
	wanted := map[uint]bool{}
	for _, id := range authorIDs {
		wanted[id] = true
	}
	var count int64
	for _, p := range r.posts {
		if wanted[p.AuthorID] && p.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *memPosts) UpdatePost(_ context.Context, id string, post *models.Post) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	copied := *post
	r.posts[id] = &copied
	return nil
}

func (r *memPosts) DeletePost(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPosts) IncrementViews(_ context.Context, id string) error {
	if p, ok := r.posts[id]; ok {
		p.Views++
		return nil
	}
	return repositories.ErrPostNotFound
}

// syncTaskRunner runs bulk operations inline so tests observe their effects.
type syncTaskRunner struct {
	errs []error
}

func (r *syncTaskRunner) Run(_ string, fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		r.errs = append(r.errs, err)
	}
}

// nullMailer drops mail, recording recipients.
type nullMailer struct {
	sent []string
}

func (m *nullMailer) Send(to, _, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}
