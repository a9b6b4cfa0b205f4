package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Allan0411/Notes-API/ai/gemini"
	aihttp "github.com/Allan0411/Notes-API/ai/http"
	aiservices "github.com/Allan0411/Notes-API/ai/services"
	"github.com/Allan0411/Notes-API/collab"
	collabbolt "github.com/Allan0411/Notes-API/collab/bolt"
	collabhttp "github.com/Allan0411/Notes-API/collab/http"
	collabmysql "github.com/Allan0411/Notes-API/collab/mysql"
	collabservices "github.com/Allan0411/Notes-API/collab/services"
	"github.com/Allan0411/Notes-API/cron"
	"github.com/Allan0411/Notes-API/gin"
	"github.com/Allan0411/Notes-API/jwt"
	"github.com/Allan0411/Notes-API/mail"
	"github.com/Allan0411/Notes-API/notes"
	notesbleve "github.com/Allan0411/Notes-API/notes/bleve"
	notesbolt "github.com/Allan0411/Notes-API/notes/bolt"
	noteshttp "github.com/Allan0411/Notes-API/notes/http"
	notesservices "github.com/Allan0411/Notes-API/notes/services"
	usersbolt "github.com/Allan0411/Notes-API/users/bolt"
	usershttp "github.com/Allan0411/Notes-API/users/http"
	usersservices "github.com/Allan0411/Notes-API/users/services"
)

func init() {
	RootCmd.AddCommand(&WebCmd)
}

var WebCmd = cobra.Command{
	Use:   "web",
	Short: "Start the web server",
	Long:  "Open the stores, wire the services and serve the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		// Load signing key
		keyData, err := ioutil.ReadFile(cfg.Auth.Key)
		if err != nil {
			logger.Fatal("could not open key file:", err)
		}
		var key struct {
			Key string `json:"k"`
		}
		if err := json.Unmarshal(keyData, &key); err != nil {
			logger.Fatal("could not read key file:", err)
		}
		jwtKey := []byte(key.Key)

		// Notes store and index
		notesDriver := &notesbolt.Driver{}
		if err := notesDriver.Open(cfg.Bolt.Notes); err != nil {
			logger.Fatal("could not open notes store:", err)
		}
		defer notesDriver.Close()
		noteRepo := notesbolt.NewNoteRepository(notesDriver)

		noteIndex := &notesbleve.NoteIndex{}
		if err := noteIndex.Open(cfg.Bleve.Store); err != nil {
			logger.Fatal("could not open note index:", err)
		}
		defer noteIndex.Close()

		// Users store
		usersDriver := &usersbolt.Driver{}
		if err := usersDriver.Open(cfg.Bolt.Users); err != nil {
			logger.Fatal("could not open users store:", err)
		}
		defer usersDriver.Close()
		userRepo := usersbolt.NewUserRepository(usersDriver)

		// Collaboration stores: mysql when configured, bolt otherwise
		var inviteRepo collab.InviteRepository
		var membershipRepo collab.MembershipRepository
		if cfg.MySQL.Host != "" {
			driver, err := collabmysql.NewDriver(
				cfg.MySQL.Host,
				cfg.MySQL.Port,
				cfg.MySQL.Username,
				cfg.MySQL.Password,
				cfg.MySQL.Database,
			)
			if err != nil {
				logger.Fatal("could not connect to mysql:", err)
			}
			defer driver.Close()
			inviteRepo = collabmysql.NewInviteRepository(driver)
			membershipRepo = collabmysql.NewMembershipRepository(driver)
		} else {
			driver := &collabbolt.Driver{}
			if err := driver.Open(cfg.Bolt.Collab); err != nil {
				logger.Fatal("could not open collab store:", err)
			}
			defer driver.Close()
			inviteRepo = &collabbolt.InviteRepository{Driver: driver}
			membershipRepo = &collabbolt.MembershipRepository{Driver: driver}
		}

		// Mail
		var mailer mail.Mailer = mail.NopMailer{}
		if cfg.SMTP.Server != "" {
			mailer = mail.NewSMTPMailer(cfg.SMTP.From, cfg.SMTP.Password, cfg.SMTP.Server, cfg.SMTP.Addr)
		}

		// Services
		noteGetter := notes.NewGetter(noteRepo)

		inviteService := collabservices.NewInviteService(
			inviteRepo,
			membershipRepo,
			noteGetter,
			mail.NewInviteNotifier(mailer, userRepo, noteRepo),
			logger,
		)
		membershipService := collabservices.NewMembershipService(membershipRepo, inviteRepo, noteGetter)
		noteService := notesservices.NewNoteService(noteRepo, noteIndex, membershipService, logger)

		encoder := jwt.NewEncodeDecoder(jwtKey)
		userService := usersservices.NewUserService(userRepo, encoder, mail.NewResetMailer(mailer), logger)

		geminiClient := gemini.NewClient(
			&http.Client{Timeout: 60 * time.Second},
			cfg.Gemini.Key,
			cfg.Gemini.TextModel,
			cfg.Gemini.ImageModel,
		)
		aiService := aiservices.NewAIService(geminiClient)

		// Daily pending-invite digest
		digest := cron.NewService(userRepo, inviteRepo, mail.NewDigestMailer(mailer, noteRepo), logger)
		digest.Start()

		// HTTP routes
		srv := gin.New()
		collabhttp.RegisterInviteEndpoints(srv, inviteService, jwtKey)
		collabhttp.RegisterCollaboratorEndpoints(srv, membershipService, jwtKey)
		noteshttp.RegisterNoteEndpoints(srv, noteService, jwtKey)
		usershttp.RegisterUserEndpoints(srv, userService, jwtKey)
		aihttp.RegisterAIEndpoints(srv, aiService, jwtKey)

		addr := cfg.Web.Addr
		if addr == "" {
			addr = ":1705"
		}
		logger.Print("server started, listening on ", addr)
		logger.Fatal(http.ListenAndServe(addr, srv))
	},
}
