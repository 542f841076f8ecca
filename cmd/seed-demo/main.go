// Command seed-demo fills a running AvaTimes service with generated demo
// content: accounts, posts, comments, likes and chat traffic.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-resty/resty/v2"

	"github.com/avatimes/avatimes/internal/logger"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "AvaTimes service base URL")
	users := flag.Int("users", 3, "number of accounts to create")
	postsPer := flag.Int("posts", 2, "posts per account")
	flag.Parse()

	log := logger.New("seed-demo")
	gofakeit.Seed(time.Now().UnixNano())

	client := resty.New().
		SetBaseURL(*apiURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	for i := 0; i < *users; i++ {
		username := gofakeit.Username()
		password := gofakeit.Password(true, true, true, false, false, 10)

		resp, err := client.R().
			SetBody(map[string]string{
				"username": username,
				"email":    gofakeit.Email(),
				"password": password,
			}).
			Post("/api/auth/register")
		if err != nil {
			log.Fatal().Err(err).Msg("register failed")
		}
		if resp.IsError() {
			log.Fatal().Str("body", resp.String()).Msg("register rejected")
		}
		log.Info().Str("username", username).Msg("account created")

		for j := 0; j < *postsPer; j++ {
			var post struct {
				ID string `json:"id"`
			}
			resp, err := client.R().
				SetBody(map[string]string{
					"author":  username,
					"title":   gofakeit.HipsterSentence(3),
					"caption": gofakeit.HipsterSentence(8) + " " + gofakeit.Emoji(),
				}).
				SetResult(&post).
				Post("/api/posts")
			if err != nil || resp.IsError() {
				log.Fatal().Err(err).Str("body", resp.String()).Msg("post failed")
			}

			if _, err := client.R().Post(fmt.Sprintf("/api/posts/%s/like", post.ID)); err != nil {
				log.Fatal().Err(err).Msg("like failed")
			}
			if _, err := client.R().
				SetBody(map[string]string{"text": gofakeit.HipsterSentence(5)}).
				Post(fmt.Sprintf("/api/posts/%s/comments", post.ID)); err != nil {
				log.Fatal().Err(err).Msg("comment failed")
			}
		}

		var conv struct {
			ID string `json:"id"`
		}
		resp, err = client.R().
			SetBody(map[string]string{"username": gofakeit.Username()}).
			SetResult(&conv).
			Post("/api/conversations/direct")
		if err != nil || resp.IsError() {
			log.Fatal().Err(err).Str("body", resp.String()).Msg("conversation failed")
		}
		if _, err := client.R().
			SetBody(map[string]string{"text": gofakeit.Question()}).
			Post(fmt.Sprintf("/api/conversations/%s/messages", conv.ID)); err != nil {
			log.Fatal().Err(err).Msg("message failed")
		}
	}

	log.Info().Int("users", *users).Msg("seeding complete")
}
