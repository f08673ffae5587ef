package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/NajimuddinS/ChatMate/internal/chatclient"
	"github.com/NajimuddinS/ChatMate/internal/clientconfig"
	"github.com/NajimuddinS/ChatMate/internal/domain"
	"github.com/NajimuddinS/ChatMate/internal/viewstate"
)

var (
	email    string
	password string
	fullName string
	signup   bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "chatmate",
		Short: "ChatMate terminal client",
		Run:   runClient,
	}

	cobra.OnInitialize(clientconfig.LoadConfig)

	rootCmd.Flags().StringVarP(&email, "email", "e", "", "account email (required)")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "account password (required)")
	rootCmd.Flags().StringVarP(&fullName, "name", "n", "", "full name (signup only)")
	rootCmd.Flags().BoolVar(&signup, "signup", false, "create the account before logging in")
	rootCmd.MarkFlagRequired("email")
	rootCmd.MarkFlagRequired("password")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runClient(cmd *cobra.Command, args []string) {
	client := chatclient.NewClient(clientconfig.Cfg.Server.URL)

	var self *domain.User
	var err error
	if signup {
		self, err = client.Signup(fullName, email, password)
	} else {
		self, err = client.Login(email, password)
	}
	if err != nil {
		log.Fatalf("Failed to authenticate: %v", err)
	}

	peers, err := client.ListPeers()
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	names := map[string]string{self.ID.String(): "Me"}
	byEmail := map[string]*domain.User{}
	assistantID := ""
	for _, peer := range peers {
		names[peer.ID.String()] = peer.FullName
		byEmail[peer.Email] = peer
		if peer.IsAssistant() {
			assistantID = peer.ID.String()
		}
	}

	if err := client.Connect(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	view := viewstate.New(client, self.ID.String(), assistantID)

	var renderMu sync.Mutex
	printed := 0
	view.Subscribe(func() {
		renderMu.Lock()
		defer renderMu.Unlock()
		if err := view.Err(); err != nil {
			fmt.Printf("\r[ERROR] %v\n> ", err)
		}
		entries := view.Entries()
		if len(entries) < printed {
			printed = 0
		}
		for _, entry := range entries[printed:] {
			if entry.Pending {
				break
			}
			printMessage(names, entry.Message)
			printed++
		}
	})

	go handleEvents(client, view)

	fmt.Printf("Logged in as %s. Commands: /to <email>, /ai <text>, /toggle\n> ", self.FullName)
	handleStdin(client, view, byEmail, assistantID)
}

// handleEvents routes pushed events into the view and the terminal.
func handleEvents(client *chatclient.Client, view *viewstate.View) {
	for event := range client.Events {
		switch event.Type {
		case domain.EventNewMessage:
			var message domain.Message
			if err := json.Unmarshal(event.Payload, &message); err != nil {
				continue
			}
			view.OnPush(&message)
		case domain.EventPresenceSet:
			var presence domain.PresencePayload
			if err := json.Unmarshal(event.Payload, &presence); err != nil {
				continue
			}
			fmt.Printf("\r[SYSTEM] %d user(s) online\n> ", len(presence.UserIDs))
		}
	}
	fmt.Println("\r[SYSTEM] Connection closed")
	os.Exit(0)
}

func handleStdin(client *chatclient.Client, view *viewstate.View, byEmail map[string]*domain.User, assistantID string) {
	reader := bufio.NewReader(os.Stdin)
	for {
		input, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)

		switch {
		case input == "":

		case strings.HasPrefix(input, "/to "):
			target := strings.TrimSpace(strings.TrimPrefix(input, "/to "))
			peer, ok := byEmail[target]
			if !ok {
				fmt.Printf("\r[ERROR] Unknown user: %s\n", target)
				break
			}
			view.SelectPeer(peer.ID.String())
			fmt.Printf("\r[SYSTEM] Talking to %s\n", peer.FullName)

		case strings.HasPrefix(input, "/ai "):
			if assistantID == "" {
				fmt.Printf("\r[ERROR] No assistant available\n")
				break
			}
			if view.Peer() != assistantID {
				view.SelectPeer(assistantID)
			}
			view.SendText(strings.TrimSpace(strings.TrimPrefix(input, "/ai ")))

		case input == "/toggle":
			enabled, err := client.ToggleAIChat()
			if err != nil {
				fmt.Printf("\r[ERROR] %v\n", err)
				break
			}
			fmt.Printf("\r[SYSTEM] AI chat enabled: %v\n", enabled)

		default:
			if view.Peer() == "" {
				fmt.Printf("\r[ERROR] Select someone first with /to <email>\n")
				break
			}
			view.SendText(input)
		}
		fmt.Print("> ")
	}
}

func printMessage(names map[string]string, message *domain.Message) {
	sender := names[message.SenderID]
	if sender == "" {
		sender = message.SenderID
	}
	body := message.Text
	if body == "" && message.Image != "" {
		body = "[image] " + message.Image
	}
	fmt.Printf("\r[%s] %s: %s\n> ", message.CreatedAt.Local().Format("15:04:05"), sender, body)
}
