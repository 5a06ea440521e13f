package constant

// AsciiArtLogo is the application's ASCII art banner.
const AsciiArtLogo = `
 _               _         _
| |__   ___  ___| |_ _ __ | | __ _ _   _
| '_ \ / _ \/ __| __| '_ \| |/ _' | | | |
| | | | (_) \__ \ |_| |_) | | (_| | |_| |
|_| |_|\___/|___/\__| .__/|_|\__,_|\__, |
                    |_|            |___/`
