package backend

import (
	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/probe"
)

// Builtins returns the backends shipped with hostplay.
func Builtins() []*Backend {
	return []*Backend{
		youtubeMusic(),
		googlePlayMusic(),
		spotify(),
	}
}

func youtubeMusic() *Backend {
	return &Backend{
		Name:     "youtube-music",
		URL:      "https://music.youtube.com",
		Family:   driver.Peek,
		Progress: probe.ProgressSource{Kind: probe.ProgressTransform},
		Selectors: probe.Selectors{
			Title:         "div.content-info-wrapper .title",
			Play:          "#play-pause-button[title='Play']",
			Pause:         "#play-pause-button[title='Pause']",
			Next:          "paper-icon-button.next-button",
			Previous:      "paper-icon-button.previous-button",
			StartPlaylist: "paper-button[aria-label='Shuffle']",
			Progress:      "#progress-bar #primaryProgress",
		},
	}
}

func googlePlayMusic() *Backend {
	return &Backend{
		Name:     "google-play-music",
		URL:      "https://play.google.com/music/listen",
		Family:   driver.Direct,
		Progress: probe.ProgressSource{Kind: probe.ProgressAria},
		Selectors: probe.Selectors{
			Title:         "#currently-playing-title",
			Play:          "#player-bar-play-pause[title='Play']",
			Pause:         "#player-bar-play-pause[title='Pause']",
			Next:          "#player-bar-forward",
			Previous:      "#player-bar-rewind",
			StartPlaylist: "#playButton",
			Progress:      "#sliderBar",
		},
	}
}

func spotify() *Backend {
	const bar = "div.Root__now-playing-bar"

	return &Backend{
		Name:     "spotify",
		URL:      "https://open.spotify.com",
		Family:   driver.PeekArtist,
		Progress: probe.ProgressSource{Kind: probe.ProgressStyle, Property: "left"},
		Selectors: probe.Selectors{
			Title:         bar + " a[data-testid='nowplaying-track-link']",
			Artist:        bar + " a[href^='/artist/']",
			Play:          bar + " button[title='Play']",
			Pause:         bar + " button[title='Pause']",
			Next:          bar + " div.player-controls__buttons button:nth-of-type(4)",
			Previous:      bar + " div.player-controls__buttons button:nth-of-type(2)",
			StartPlaylist: "div.contentSpacing button[data-testid='play-button']",
			Progress:      "div.Root__top-container div.playback-bar div.progress-bar__bg button",
		},
	}
}
