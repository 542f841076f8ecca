package store

import (
	"time"

	"github.com/avatimes/avatimes/internal/model"
)

// Demo seed datasets. Returned on the first-ever access of their collection
// and persisted, so the app never opens onto an empty feed. Timestamps are
// staged relative to seeding time.

func seedPosts() []*model.Post {
	now := time.Now().UTC()
	return []*model.Post{
		{
			ID:        "post-1",
			Author:    "AvaQueen",
			Title:     "Ethereal Glow Look",
			Caption:   "Finally got the perfect ethereal look! ✨ Took me hours but so worth it! #avakin #style #glow",
			Location:  "Avakin Life",
			Likes:     1234,
			Comments:  89,
			CreatedAt: now.Add(-time.Hour),
			Features: map[string]model.Feature{
				"eyes":      {Name: "Luminous Aqua Eyes", Measurements: map[string]float64{"width": 15, "height": 10, "scale": 5, "rotate": 0}},
				"head":      {Name: "Soft Oval Shape", Measurements: map[string]float64{"scale": 8}},
				"skinColor": {Name: "Porcelain Fair"},
				"eyebrows":  {Name: "Natural Arch Brown", Measurements: map[string]float64{"width": 12, "height": 5, "scale": 6, "rotate": 2, "thickness": 4}},
				"mouth":     {Name: "Glossy Rose Lips", Measurements: map[string]float64{"height": 8, "scale": 7}},
				"hair":      {Name: "Flowing Silver Waves"},
			},
		},
		{
			ID:        "post-2",
			Author:    "NightKing",
			Title:     "Dark Prince Style",
			Caption:   "Dark vibes only 🖤 The perfect look for the new club opening tonight! #darkmode #avakinlife",
			Location:  "Night Club VIP",
			Likes:     856,
			Comments:  45,
			CreatedAt: now.Add(-24 * time.Hour),
			Features: map[string]model.Feature{
				"eyes":      {Name: "Intense Onyx Gaze", Measurements: map[string]float64{"width": 18, "height": 12, "scale": 8, "rotate": -2}},
				"head":      {Name: "Sharp Angular", Measurements: map[string]float64{"scale": 10}},
				"skinColor": {Name: "Deep Bronze"},
				"beard":     {Name: "Designer Stubble", Color: "Dark Brown"},
				"hair":      {Name: "Slicked Back Raven"},
			},
		},
		{
			ID:        "post-3",
			Author:    "SweetAva",
			Title:     "Candy Pop Princess",
			Caption:   "Living my best kawaii life 💕🍬 Who else loves pink? #kawaii #cute #avakin",
			Likes:     2341,
			Comments:  156,
			CreatedAt: now.Add(-48 * time.Hour),
			Features: map[string]model.Feature{
				"eyes":      {Name: "Sparkle Pink Fantasy", Measurements: map[string]float64{"width": 20, "height": 15, "scale": 12, "rotate": 3}},
				"head":      {Name: "Heart Shaped", Measurements: map[string]float64{"scale": 6}},
				"skinColor": {Name: "Peachy Glow"},
				"mouth":     {Name: "Cherry Bomb Lips", Measurements: map[string]float64{"height": 10, "scale": 9}},
				"hair":      {Name: "Cotton Candy Pigtails"},
			},
		},
		{
			ID:        "post-4",
			Author:    "EarthChild",
			Title:     "Natural Beauty",
			Caption:   "Sometimes natural is the best look 🌿 Keeping it simple today! #natural #beauty",
			Location:  "Beach Paradise",
			Likes:     678,
			Comments:  32,
			CreatedAt: now.Add(-72 * time.Hour),
			Features: map[string]model.Feature{
				"eyes":      {Name: "Warm Hazel Natural", Measurements: map[string]float64{"width": 14, "height": 11, "scale": 6, "rotate": 0}},
				"head":      {Name: "Round Soft", Measurements: map[string]float64{"scale": 7}},
				"skinColor": {Name: "Warm Caramel"},
				"eyebrows":  {Name: "Full Natural Dark", Measurements: map[string]float64{"width": 15, "height": 5, "scale": 7, "rotate": 1, "thickness": 5}},
				"hair":      {Name: "Curly Afro Black"},
			},
		},
	}
}

func seedReels() []*model.Reel {
	now := time.Now().UTC()
	return []*model.Reel{
		{
			ID:        "reel-1",
			Author:    "AvaQueen",
			Caption:   "Check out my new Avakin look! ✨ #avakin #style",
			Music:     "Original Sound - AvaQueen",
			Likes:     1234,
			Comments:  89,
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:        "reel-2",
			Author:    "NightKing",
			Caption:   "Dark vibes only 🖤 #darkmode #avakinlife",
			Music:     "Trending Sound",
			Likes:     856,
			Comments:  45,
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        "reel-3",
			Author:    "SweetAva",
			Caption:   "Tutorial: How to get this look 💕 #tutorial #avakin",
			Music:     "Pop Hits 2024",
			Likes:     2100,
			Comments:  156,
			CreatedAt: now.Add(-48 * time.Hour),
		},
	}
}

func seedStories() []*model.Story {
	now := time.Now().UTC()
	return []*model.Story{
		{ID: "story-1", Author: "AvaQueen", Avatar: "A", CreatedAt: now.Add(-time.Hour)},
		{ID: "story-2", Author: "NightKing", Avatar: "N", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "story-3", Author: "SweetAva", Avatar: "S", Viewed: true, CreatedAt: now.Add(-4 * time.Hour)},
	}
}

func seedConversations() []*model.Conversation {
	return []*model.Conversation{
		{
			ID:          "conv-1",
			Type:        model.ConversationDirect,
			Name:        "AvaQueen",
			Avatar:      "A",
			LastMessage: "Hey! Love your new look 😍",
			Time:        "2m",
			Unread:      1,
			Messages: []model.Message{
				{ID: "msg-1", Sender: "AvaQueen", Text: "Hey! Love your new look 😍", Time: "10:30 AM"},
				{ID: "msg-2", Sender: "AvaQueen", Text: "Where did you get that outfit?", Time: "10:31 AM"},
			},
		},
		{
			ID:          "conv-2",
			Type:        model.ConversationGroup,
			Name:        "Avakin Stylists",
			Avatar:      "👥",
			Members:     []string{"AvaQueen", "NightKing", "SweetAva"},
			LastMessage: "NightKing: Check this out!",
			Time:        "1h",
			Messages: []model.Message{
				{ID: "msg-1", Sender: "NightKing", Text: "Does anyone have the new wings?", Time: "9:00 AM"},
				{ID: "msg-2", Sender: "SweetAva", Text: "Yes! They are amazing", Time: "9:05 AM"},
				{ID: "msg-3", Sender: "me", Text: "I need to get them soon", Time: "9:10 AM", IsMe: true},
			},
		},
		{
			ID:          "conv-3",
			Type:        model.ConversationDirect,
			Name:        "NightKing",
			Avatar:      "N",
			LastMessage: "Are we doing the event later?",
			Time:        "3h",
			Messages: []model.Message{
				{ID: "msg-1", Sender: "NightKing", Text: "Are we doing the event later?", Time: "3:00 PM"},
			},
		},
		{
			ID:          "conv-4",
			Type:        model.ConversationDirect,
			Name:        "SweetAva",
			Avatar:      "S",
			LastMessage: "Thanks for the tips! 💕",
			Time:        "1d",
			Messages: []model.Message{
				{ID: "msg-1", Sender: "me", Text: "Try the new hair styles!", Time: "2:00 PM", IsMe: true},
				{ID: "msg-2", Sender: "SweetAva", Text: "Thanks for the tips! 💕", Time: "2:30 PM"},
			},
		},
	}
}

func seedNotifications() []*model.Notification {
	return []*model.Notification{
		{ID: "notif-1", Type: model.NotificationLike, User: "AvaQueen", Text: "liked your post", Time: "2m ago", Unread: true, PostID: "post-1"},
		{ID: "notif-2", Type: model.NotificationFollow, User: "NightKing", Text: "started following you", Time: "1h ago", Unread: true},
		{ID: "notif-3", Type: model.NotificationComment, User: "SweetAva", Text: `commented: "Love this look! 💕"`, Time: "3h ago", PostID: "post-2"},
		{ID: "notif-4", Type: model.NotificationLike, User: "EarthChild", Text: "liked your reel", Time: "5h ago"},
		{ID: "notif-5", Type: model.NotificationMention, User: "AvaQueen", Text: "mentioned you in a comment", Time: "1d ago"},
		{ID: "notif-6", Type: model.NotificationFollow, User: "StarGazer", Text: "started following you", Time: "2d ago"},
	}
}

// SeedComments is the starter thread attached to a post the first time its
// comment sheet is opened.
func SeedComments(author string) []model.Comment {
	return []model.Comment{
		{ID: "comment-seed-1", User: "AvaQueen", Text: "Love this! ❤️", Time: "2h", Likes: 5},
		{ID: "comment-seed-2", User: "NightKing", Text: "Amazing look!", Time: "1h", Likes: 3},
		{ID: "comment-seed-3", User: author, Text: "Thanks everyone! 😊", Time: "30m", Likes: 8},
	}
}
