package res

// AboutContent contains the Markdown content for the About dialog.
const AboutContent = `A real-time audio visualizer built with Go and Fyne.

**Sources:**
- Sound files (WAV, MP3, OGG Vorbis, FLAC)
- Direct input from the default microphone

**Styles:**
- Bars, Wave, Filled Wave and Oscilloscope
- Custom base color with optional rainbow cycling
`
