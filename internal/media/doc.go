// Package media reassembles split video and audio streams into a single
// uploadable file.
//
// The source platform delivers DASH video and audio as separate streams; the
// assembler derives the audio URL from the video URL, downloads both, and
// invokes ffmpeg with a stream-copy to mux them. Command execution goes
// through the Executor interface so tests can substitute a fake.
package media
