// Package sources holds the external collaborators of the video service.
//
// YouTube captions are split across two files by responsibility:
//
//	youtube_innertube.go: Innertube API types, constants, and low-level HTTP primitives
//	youtube_captions.go : caption track discovery (watch page + ANDROID player) and timedtext parsing
//
// Video metadata comes from the yt-dlp binary, see ytdlp.go.
package sources
