// Command swiper is a terminal client that logs in, fetches the candidate
// list and drives the swipe deck from stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/emberdate/emberdate/pkg/apiclient"
	"github.com/emberdate/emberdate/pkg/deck"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "backend base URL")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	ctx := context.Background()
	client, userID, err := apiclient.New(*baseURL).Login(ctx, *email, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Printf("logged in as %s\n", userID)

	candidates, err := client.Unmatched(ctx)
	if err != nil {
		log.Fatalf("fetching candidates failed: %v", err)
	}
	if len(candidates) == 0 {
		fmt.Println("nobody left to swipe")
		return
	}

	q := deck.New(candidates, deck.Options{Liker: client})
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("commands: r = like, l = pass, q = quit")
	for {
		fg, ok := q.Foreground()
		if !ok {
			fmt.Println("deck exhausted, everyone has been liked")
			return
		}
		fmt.Printf("\n%s, %d\n%s\n[r/l/q]> ", fg.Username, fg.Age, fg.Bio)
		if !in.Scan() {
			return
		}
		var dir deck.Direction
		switch strings.TrimSpace(in.Text()) {
		case "r":
			dir = deck.Right
		case "l":
			dir = deck.Left
		case "q":
			return
		default:
			continue
		}
		res, err := q.Swipe(ctx, dir)
		if errors.Is(err, deck.ErrTransitionPending) {
			fmt.Println("card still moving, try again")
			continue
		}
		if err != nil {
			fmt.Printf("swipe failed: %v\n", err)
			continue
		}
		if res.Matched {
			fmt.Printf("*** it's a match with %s! ***\n", res.Swiped.Username)
		}
		// wait out the card transition so the next prompt shows the new card
		time.Sleep(750 * time.Millisecond)
	}
}
