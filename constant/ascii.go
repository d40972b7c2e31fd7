package constant

// AsciiArtLogo is the banner shown in the root command help.
const AsciiArtLogo = `
 _                                       
| | ___   _ _ __ __ _ ___  ___  _ __ __ _ 
| |/ / | | | '__/ _' / __|/ _ \| '__/ _' |
|   <| |_| | | | (_| \__ \ (_) | | | (_| |
|_|\_\\__,_|_|  \__,_|___/\___/|_|  \__,_|`
