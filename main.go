// Package main provides the chime command line interface.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"chime/internal/config"
	"chime/internal/errmsg"
	"chime/internal/ingest"
	"chime/internal/library"
	"chime/internal/logging"
	"chime/internal/playback"
	"chime/internal/player"
	"chime/internal/playlist"
	"chime/internal/playlists"
	"chime/internal/store"
)

var (
	app = kingpin.New("chime", "Personal music library and playback engine")

	// add command
	addCmd   = app.Command("add", "Import audio files into the library")
	addFiles = addCmd.Arg("files", "Audio files to import").Required().ExistingFiles()

	// list command
	listCmd = app.Command("list", "List all tracks in the library")

	// search command
	searchCmd   = app.Command("search", "Search tracks by name, artist or album")
	searchQuery = searchCmd.Arg("query", "Search text").Required().String()

	// recommend command
	recommendCmd = app.Command("recommend", "Suggest tracks based on recently added music")

	// fav command
	favCmd = app.Command("fav", "Toggle a track's favorite status")
	favID  = favCmd.Arg("id", "Track ID").Required().String()

	// playlist commands
	playlistCmd = app.Command("playlist", "Manage playlists")

	playlistCreateCmd  = playlistCmd.Command("create", "Create an empty playlist")
	playlistCreateName = playlistCreateCmd.Arg("name", "Playlist name").Required().String()

	playlistDeleteCmd  = playlistCmd.Command("delete", "Delete a playlist")
	playlistDeleteName = playlistDeleteCmd.Arg("name", "Playlist name").Required().String()

	playlistAddCmd   = playlistCmd.Command("add", "Append a track to a playlist")
	playlistAddName  = playlistAddCmd.Arg("name", "Playlist name").Required().String()
	playlistAddTrack = playlistAddCmd.Arg("track-id", "Track ID").Required().String()

	playlistRemoveCmd   = playlistCmd.Command("remove", "Remove a track from a playlist")
	playlistRemoveName  = playlistRemoveCmd.Arg("name", "Playlist name").Required().String()
	playlistRemoveTrack = playlistRemoveCmd.Arg("track-id", "Track ID").Required().String()

	playlistShowCmd  = playlistCmd.Command("show", "Show a playlist's tracks")
	playlistShowName = playlistShowCmd.Arg("name", "Playlist name").Required().String()

	playlistListCmd = playlistCmd.Command("list", "List all playlists")

	// play command
	playCmd      = app.Command("play", "Play a track and the queue built around it")
	playID       = playCmd.Arg("id", "Track ID (defaults to the first library track)").String()
	playShuffle  = playCmd.Flag("shuffle", "Pick successor tracks at random").Bool()
	playRepeat   = playCmd.Flag("repeat", "Repeat mode").Default("off").Enum("off", "all", "one")
	playPlaylist = playCmd.Flag("playlist", "Queue a playlist instead of the whole library").String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load()
	if err != nil {
		fatal(errmsg.Format(errmsg.OpInitialize, err))
	}
	logCfg := cfg.GetLog()
	log := logging.New(logCfg.Level, logCfg.Format, os.Stderr)

	var st *store.Store
	if cfg.DBPath != "" {
		st, err = store.OpenAt(cfg.DBPath)
	} else {
		st, err = store.Open()
	}
	if err != nil {
		fatal(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer st.Close()

	repo := library.NewRepository(st, log)
	tracks, err := st.AllTracks()
	if err != nil {
		fatal(errmsg.Format(errmsg.OpLibraryLoad, err))
	}
	repo.ReplaceAll(tracks)

	favs, err := playlists.LoadFavorites(st)
	if err != nil {
		fatal(errmsg.Format(errmsg.OpLibraryLoad, err))
	}
	coll, err := playlists.LoadCollection(st)
	if err != nil {
		fatal(errmsg.Format(errmsg.OpLibraryLoad, err))
	}

	switch command {
	case addCmd.FullCommand():
		runAdd(repo, *addFiles)
	case listCmd.FullCommand():
		printTracks(repo.All(), favs)
	case searchCmd.FullCommand():
		printTracks(library.Search(*searchQuery, repo.All()), favs)
	case recommendCmd.FullCommand():
		printTracks(library.Recommend(nil, repo, 5), favs)
	case favCmd.FullCommand():
		runFav(repo, favs, *favID)
	case playlistCreateCmd.FullCommand():
		if err := coll.Create(*playlistCreateName); err != nil {
			fatal(errmsg.FormatWith(errmsg.OpPlaylistCreate, *playlistCreateName, err))
		}
		fmt.Printf("Created playlist %q\n", *playlistCreateName)
	case playlistDeleteCmd.FullCommand():
		if err := coll.Delete(*playlistDeleteName); err != nil {
			fatal(errmsg.FormatWith(errmsg.OpPlaylistDelete, *playlistDeleteName, err))
		}
		fmt.Printf("Deleted playlist %q\n", *playlistDeleteName)
	case playlistAddCmd.FullCommand():
		runPlaylistAdd(repo, coll, *playlistAddName, *playlistAddTrack)
	case playlistRemoveCmd.FullCommand():
		if err := coll.RemoveTrack(*playlistRemoveName, *playlistRemoveTrack); err != nil {
			fatal(errmsg.FormatWith(errmsg.OpPlaylistRemove, *playlistRemoveName, err))
		}
		fmt.Printf("Removed %s from %q\n", *playlistRemoveTrack, *playlistRemoveName)
	case playlistShowCmd.FullCommand():
		runPlaylistShow(repo, coll, favs, *playlistShowName)
	case playlistListCmd.FullCommand():
		for _, p := range coll.All() {
			fmt.Printf("%s (%d tracks)\n", p.Name, len(p.TrackIDs))
		}
	case playCmd.FullCommand():
		runPlay(cfg, log, repo, coll, st)
	}
}

func runAdd(repo *library.Repository, files []string) {
	for _, path := range files {
		t, err := ingest.FromFile(path)
		if err != nil {
			fatal(errmsg.FormatWith(errmsg.OpIngestFile, path, err))
		}
		id := repo.Add(t)
		fmt.Printf("Added %s - %s [%s] (%s)\n",
			t.Artist, t.Name, humanize.Bytes(uint64(len(t.Payload))), id)
	}
}

func runFav(repo *library.Repository, favs *playlists.Favorites, id string) {
	t := repo.FindByID(id)
	if t == nil {
		fatal(errmsg.FormatWith(errmsg.OpFavoriteToggle, id, library.ErrNotFound))
	}
	favorited, err := favs.Toggle(id)
	if err != nil {
		// The in-memory toggle took effect; the write failure is reported.
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpFavoriteToggle, err))
	}
	if favorited {
		fmt.Printf("Favorited %s - %s\n", t.Artist, t.Name)
	} else {
		fmt.Printf("Unfavorited %s - %s\n", t.Artist, t.Name)
	}
}

func runPlaylistAdd(repo *library.Repository, coll *playlists.Collection, name, trackID string) {
	if repo.FindByID(trackID) == nil {
		fatal(errmsg.FormatWith(errmsg.OpPlaylistAddTrack, name, library.ErrNotFound))
	}
	if err := coll.AddTrack(name, trackID); err != nil {
		fatal(errmsg.FormatWith(errmsg.OpPlaylistAddTrack, name, err))
	}
	fmt.Printf("Added %s to %q\n", trackID, name)
}

func runPlaylistShow(repo *library.Repository, coll *playlists.Collection, favs *playlists.Favorites, name string) {
	p, ok := coll.Get(name)
	if !ok {
		fatal(errmsg.FormatWith(errmsg.OpPlaylistAddTrack, name, playlists.ErrPlaylistNotFound))
	}
	fmt.Printf("%s:\n", p.Name)
	var resolved []*library.Track
	for _, id := range p.TrackIDs {
		if t := repo.FindByID(id); t != nil {
			resolved = append(resolved, t)
		}
	}
	printTracks(resolved, favs)
}

func runPlay(cfg *config.Config, log zerolog.Logger, repo *library.Repository,
	coll *playlists.Collection, st *store.Store,
) {
	if repo.Len() == 0 {
		fatal(errmsg.Format(errmsg.OpPlaybackStart, fmt.Errorf("library is empty")))
	}

	pl := player.NewBeep()
	defer pl.Close()

	svc := playback.New(repo, playlist.NewQueue(),
		playlist.NewHistory(playlist.DefaultHistoryLimit), pl, st, log)
	defer svc.Close()

	svc.SetVolume(cfg.GetVolume())
	switch *playRepeat {
	case "all":
		svc.SetRepeatMode(playback.RepeatAll)
	case "one":
		svc.SetRepeatMode(playback.RepeatOne)
	}
	if *playShuffle {
		svc.ToggleShuffle()
	}

	if *playPlaylist != "" {
		p, ok := coll.Get(*playPlaylist)
		if !ok {
			fatal(errmsg.FormatWith(errmsg.OpPlaybackStart, *playPlaylist, playlists.ErrPlaylistNotFound))
		}
		svc.SetContext(p.TrackIDs)
	}

	id := *playID
	if id == "" {
		if *playPlaylist != "" {
			p, _ := coll.Get(*playPlaylist)
			if len(p.TrackIDs) == 0 {
				fatal(errmsg.FormatWith(errmsg.OpPlaybackStart, *playPlaylist, playback.ErrQueueEmpty))
			}
			id = p.TrackIDs[0]
		} else {
			id = repo.IDs()[0]
		}
	}

	sub := svc.Subscribe()
	if err := svc.PlayTrack(id); err != nil {
		fatal(errmsg.FormatWith(errmsg.OpPlaybackStart, id, err))
	}
	if t := repo.FindByID(id); t != nil {
		printNowPlaying(t)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case e := <-sub.TrackChanged:
			if t := repo.FindByID(e.CurrentID); t != nil && e.CurrentID != e.PreviousID {
				printNowPlaying(t)
			}
		case e := <-sub.StateChanged:
			// A queueless track ran out with repeat off. A non-empty
			// queue wraps instead, so Loaded there is only a transient
			// step of an auto-advance.
			if e.Previous == playback.Playing && e.Current == playback.Loaded &&
				len(svc.QueueIDs()) == 0 {
				return
			}
		case e := <-sub.Error:
			op := errmsg.OpPlaybackStart
			if e.Op == "load" {
				op = errmsg.OpTrackLoad
			}
			fmt.Fprintln(os.Stderr, errmsg.FormatWith(op, e.TrackID, e.Err))
		case <-sigCh:
			fmt.Println()
			return
		case <-sub.Done:
			return
		}
	}
}

func printNowPlaying(t *library.Track) {
	fmt.Printf("▶ %s - %s [%s]\n", t.Artist, t.Name, formatDuration(t.Duration))
}

func printTracks(tracks []*library.Track, favs *playlists.Favorites) {
	for _, t := range tracks {
		marker := " "
		if favs.IsFavorite(t.ID) {
			marker = "♥"
		}
		fmt.Printf("%s %s - %s (%s) [%s] plays:%d added %s  %s\n",
			marker, t.Artist, t.Name, t.Album, formatDuration(t.Duration),
			t.PlayCount, humanize.Time(t.DateAdded), t.ID)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
