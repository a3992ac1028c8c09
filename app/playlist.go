package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/burhanahmeed/tempo/internal/models"
	"github.com/burhanahmeed/tempo/internal/pathutil"
	"github.com/burhanahmeed/tempo/internal/playback"
	"github.com/burhanahmeed/tempo/internal/ui"
	"github.com/burhanahmeed/tempo/store"
)

const noTracksMsg = "The playlist is empty. Add a track with 'tempo playlist add'"

// controllerHelper opens the datastore and restores the playlist into a
// controller without a player. The caller must close the returned DB.
func controllerHelper() (*playback.Controller, store.DB, error) {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	controller := playback.NewController(
		nil,
		playback.WithSink(persistPlaylist(db)),
	)

	if playlist, ok := db.LoadPlaylist(); ok {
		controller.Restore(playlist)
	}

	return controller, db, nil
}

// resolveTrackID matches the argument against full IDs, unique ID
// prefixes, and video IDs.
func resolveTrackID(tracks []models.Track, arg string) (string, error) {
	var matches []string

	for _, t := range tracks {
		if t.ID == arg || t.VideoID == arg {
			return t.ID, nil
		}

		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no track matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: %d tracks match", arg, len(matches))
	}
}

// printTracksTable prints the playlist to the command-line. Tracks whose
// audio is present in the local cache are marked as cached.
func printTracksTable(
	w io.Writer,
	tracks []models.Track,
	current int,
	cached map[string]bool,
) {
	tableBody := make([][]string, len(tracks))

	for i := range tracks {
		t := tracks[i]

		cachedText := ui.Red("no")
		if cached[t.VideoID] {
			cachedText = ui.Green("yes")
		}

		marker := ""
		if i == current {
			marker = ui.Highlight("▶")
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			marker,
			t.ID[:shortIDLen],
			t.Title,
			t.VideoID,
			cachedText,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "", "ID", "TITLE", "VIDEO", "CACHED"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// playlistAddAction appends a YouTube URL to the playlist.
func playlistAddAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("a YouTube URL is required")
	}

	controller, db, err := controllerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	t, err := controller.AddTrack(ctx.Args().First())
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Added track %s (video %s)", t.ID[:shortIDLen], t.VideoID)

	audioPath := pathutil.TracksDirPath()
	if !cachedSet(audioPath)[t.VideoID] {
		pterm.Info.Printfln(
			"No audio file for %s found in %s. Place one there to enable playback",
			t.VideoID,
			audioPath,
		)
	}

	return nil
}

// playlistListAction prints the playlist.
func playlistListAction(ctx *cli.Context) error {
	controller, db, err := controllerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	tracks := controller.Tracks()

	if ctx.Bool("json") {
		b, err := json.Marshal(tracks)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(tracks) == 0 {
		pterm.Info.Println(noTracksMsg)
		return nil
	}

	printTracksTable(
		os.Stdout,
		tracks,
		controller.CurrentIndex(),
		cachedSet(pathutil.TracksDirPath()),
	)

	return nil
}

// playlistRemoveAction removes a track from the playlist.
func playlistRemoveAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("a track ID is required")
	}

	controller, db, err := controllerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id, err := resolveTrackID(controller.Tracks(), ctx.Args().First())
	if err != nil {
		return err
	}

	controller.RemoveTrack(id)

	pterm.Success.Printfln("Removed track %s", id[:shortIDLen])

	return nil
}

// cachedSet indexes the video IDs with audio files in the tracks cache.
func cachedSet(tracksDir string) map[string]bool {
	set := make(map[string]bool)

	for _, videoID := range playback.CachedTracks(tracksDir) {
		set[videoID] = true
	}

	return set
}
